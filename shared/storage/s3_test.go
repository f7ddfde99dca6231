package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	at := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)

	key := ObjectKey("/users/abc/", "Holiday.JPG", at)
	assert.True(t, strings.HasPrefix(key, "users/abc/2024/03/07/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	key = ObjectKey("users", `..\..\etc\passwd`, at)
	assert.NotContains(t, key, "..")
	assert.NotContains(t, key, "passwd")
}

func TestS3Presigner_PresignUpload(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), Config{
		Bucket:          "media",
		Region:          "us-east-1",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		ExpiresIn:       15 * time.Minute,
	})
	require.NoError(t, err)

	fixed := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	upload, err := p.PresignUpload(context.Background(), "users/u1", "a.png", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "PUT", upload.Method)
	assert.True(t, strings.HasPrefix(upload.URL, "http://127.0.0.1:9000/media/users/u1/2024/01/02/"), upload.URL)
	assert.Contains(t, upload.URL, "X-Amz-Signature=")
	assert.Equal(t, fixed.Add(15*time.Minute), upload.ExpiresAt)
}
