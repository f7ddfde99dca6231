package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/repository"
)

func TestFollowUsecase_FollowUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.verified(t, "alice@example.com")
	bob := env.verified(t, "bob@example.com")

	created, err := env.follow.Follow(ctx, alice.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.follow.Follow(ctx, alice.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	assert.False(t, created)

	followers, err := env.follow.ListFollowers(ctx, bob.ID.Hex(), repository.PageParams{})
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].ID)

	following, err := env.follow.ListFollowing(ctx, alice.ID.Hex(), repository.PageParams{})
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	gotBob, err := env.repos.Users.GetUser(ctx, bob.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), gotBob.FollowersCount)

	removed, err := env.follow.Unfollow(ctx, alice.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = env.follow.Unfollow(ctx, alice.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	assert.False(t, removed)

	followers, err = env.follow.ListFollowers(ctx, bob.ID.Hex(), repository.PageParams{})
	require.NoError(t, err)
	assert.Empty(t, followers)

	gotAlice, err := env.repos.Users.GetUser(ctx, alice.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), gotAlice.FollowingCount)
}

func TestFollowUsecase_Invariants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.verified(t, "alice@example.com")

	_, err := env.follow.Follow(ctx, alice.ID.Hex(), alice.ID.Hex())
	assert.ErrorIs(t, err, ErrCannotFollowSelf)

	_, err = env.follow.Follow(ctx, alice.ID.Hex(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.follow.ListFollowers(ctx, bson.NewObjectID().Hex(), repository.PageParams{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
