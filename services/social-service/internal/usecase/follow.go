package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/repository"
)

// FollowUsecase manages follow edges.
type FollowUsecase interface {
	// Follow creates the edge userID -> followedUserID. It reports false when
	// the edge already existed.
	Follow(ctx context.Context, userID, followedUserID string) (bool, error)

	// Unfollow removes the edge. It reports false when there was no edge.
	Unfollow(ctx context.Context, userID, followedUserID string) (bool, error)

	ListFollowers(ctx context.Context, userID string, page repository.PageParams) ([]*model.User, error)
	ListFollowing(ctx context.Context, userID string, page repository.PageParams) ([]*model.User, error)
}

type followUsecase struct {
	userRepo     repository.UserRepository
	followerRepo repository.FollowerRepository
	logger       *zerolog.Logger
}

func NewFollowUsecase(
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	logger *zerolog.Logger,
) FollowUsecase {
	return &followUsecase{
		userRepo:     userRepo,
		followerRepo: followerRepo,
		logger:       logger,
	}
}

func (u *followUsecase) Follow(ctx context.Context, userID, followedUserID string) (bool, error) {
	if userID == followedUserID {
		return false, ErrCannotFollowSelf
	}

	follower, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return false, ErrUserNotFound
	}
	followed, err := u.mustExist(ctx, followedUserID)
	if err != nil {
		return false, err
	}

	_, err = u.followerRepo.CreateFollower(ctx, &model.Follower{
		UserID:         follower,
		FollowedUserID: followed,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}

	u.adjustCounts(ctx, userID, followedUserID, 1)
	return true, nil
}

func (u *followUsecase) Unfollow(ctx context.Context, userID, followedUserID string) (bool, error) {
	if userID == followedUserID {
		return false, ErrCannotFollowSelf
	}

	removed, err := u.followerRepo.DeleteFollower(ctx, userID, followedUserID)
	if err != nil {
		return false, err
	}

	if removed {
		u.adjustCounts(ctx, userID, followedUserID, -1)
	}
	return removed, nil
}

// adjustCounts keeps the denormalized counters in step with the edges. A
// failure leaves the edge in place; counters are informational.
func (u *followUsecase) adjustCounts(ctx context.Context, userID, followedUserID string, delta int64) {
	if err := u.userRepo.IncrementFollowCounts(ctx, userID, followedUserID, delta); err != nil {
		u.logger.Error().Err(err).
			Str("user_id", userID).
			Str("followed_user_id", followedUserID).
			Int64("delta", delta).
			Msg("failed to update follow counts")
	}
}

func (u *followUsecase) ListFollowers(
	ctx context.Context,
	userID string,
	page repository.PageParams,
) ([]*model.User, error) {
	if _, err := u.mustExist(ctx, userID); err != nil {
		return nil, err
	}

	edges, err := u.followerRepo.ListFollowers(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	return u.users(ctx, edges, func(f *model.Follower) bson.ObjectID { return f.UserID })
}

func (u *followUsecase) ListFollowing(
	ctx context.Context,
	userID string,
	page repository.PageParams,
) ([]*model.User, error) {
	if _, err := u.mustExist(ctx, userID); err != nil {
		return nil, err
	}

	edges, err := u.followerRepo.ListFollowing(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	return u.users(ctx, edges, func(f *model.Follower) bson.ObjectID { return f.FollowedUserID })
}

func (u *followUsecase) users(
	ctx context.Context,
	edges []*model.Follower,
	pick func(*model.Follower) bson.ObjectID,
) ([]*model.User, error) {
	users := make([]*model.User, 0, len(edges))
	for _, edge := range edges {
		user, err := u.userRepo.GetUser(ctx, pick(edge).Hex())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (u *followUsecase) mustExist(ctx context.Context, userID string) (bson.ObjectID, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return bson.ObjectID{}, ErrUserNotFound.WithMetadata(map[string]any{"user_id": userID})
		}
		return bson.ObjectID{}, err
	}
	return user.ID, nil
}
