package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
)

func TestMemoryUsers_UniqueEmail(t *testing.T) {
	t.Parallel()

	repos := NewMemoryRepositories()
	ctx := context.Background()

	_, err := repos.Users.CreateUser(ctx, &model.User{Email: "a@example.com", Username: "a"})
	require.NoError(t, err)

	_, err = repos.Users.CreateUser(ctx, &model.User{Email: "a@example.com", Username: "b"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMemoryUsers_ConsumeEmailVerifyTokenOnce(t *testing.T) {
	t.Parallel()

	repos := NewMemoryRepositories()
	ctx := context.Background()

	u, err := repos.Users.CreateUser(ctx, &model.User{Email: "a@example.com", EmailVerifyToken: "tok"})
	require.NoError(t, err)

	ok, err := repos.Users.ConsumeEmailVerifyToken(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Users.ConsumeEmailVerifyToken(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repos.Users.GetUser(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.Verified, got.Verify)
	assert.Empty(t, got.EmailVerifyToken)
}

func TestMemoryUsers_UpdateUser(t *testing.T) {
	t.Parallel()

	repos := NewMemoryRepositories()
	ctx := context.Background()

	a, err := repos.Users.CreateUser(ctx, &model.User{Email: "a@example.com", Username: "alice"})
	require.NoError(t, err)
	b, err := repos.Users.CreateUser(ctx, &model.User{Email: "b@example.com", Username: "bob"})
	require.NoError(t, err)

	bio := "hello"
	got, err := repos.Users.UpdateUser(ctx, a.ID.Hex(), UpdateUserParams{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Bio)
	assert.Equal(t, "alice", got.Username)

	taken := "alice"
	_, err = repos.Users.UpdateUser(ctx, b.ID.Hex(), UpdateUserParams{Username: &taken})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = repos.Users.UpdateUser(ctx, a.ID.Hex(), UpdateUserParams{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestMemoryRefreshTokens_Rotate(t *testing.T) {
	t.Parallel()

	repos := NewMemoryRepositories()
	ctx := context.Background()
	userID := bson.NewObjectID()

	_, err := repos.RefreshTokens.CreateToken(ctx, &model.RefreshToken{UserID: userID, Token: "old"})
	require.NoError(t, err)

	_, err = repos.RefreshTokens.RotateToken(ctx, userID.Hex(), "old", &model.RefreshToken{
		UserID:    userID,
		Token:     "new",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = repos.RefreshTokens.GetToken(ctx, userID.Hex(), "old")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.RefreshTokens.GetToken(ctx, userID.Hex(), "new")
	assert.NoError(t, err)

	_, err = repos.RefreshTokens.RotateToken(ctx, userID.Hex(), "old", &model.RefreshToken{UserID: userID, Token: "newer"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.RefreshTokens.GetToken(ctx, userID.Hex(), "newer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRefreshTokens_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	repos := NewMemoryRepositories()
	ctx := context.Background()
	userID := bson.NewObjectID()

	_, err := repos.RefreshTokens.CreateToken(ctx, &model.RefreshToken{UserID: userID, Token: "t"})
	require.NoError(t, err)

	deleted, err := repos.RefreshTokens.DeleteToken(ctx, userID.Hex(), "t")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repos.RefreshTokens.DeleteToken(ctx, userID.Hex(), "t")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryFollowers_UniqueEdge(t *testing.T) {
	t.Parallel()

	repos := NewMemoryRepositories()
	ctx := context.Background()
	a, b := bson.NewObjectID(), bson.NewObjectID()

	_, err := repos.Followers.CreateFollower(ctx, &model.Follower{UserID: a, FollowedUserID: b})
	require.NoError(t, err)

	_, err = repos.Followers.CreateFollower(ctx, &model.Follower{UserID: a, FollowedUserID: b})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	followers, err := repos.Followers.ListFollowers(ctx, b.Hex(), PageParams{})
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a, followers[0].UserID)

	following, err := repos.Followers.ListFollowing(ctx, b.Hex(), PageParams{})
	require.NoError(t, err)
	assert.Empty(t, following)
}
