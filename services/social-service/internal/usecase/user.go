package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/social-api/services/social-service/pkg/types"
	"github.com/vasapolrittideah/social-api/shared/middleware"
)

// UserUsecase defines profile use cases.
type UserUsecase interface {
	GetMe(ctx context.Context, userID string) (*model.User, error)
	UpdateMe(ctx context.Context, userID string, params UpdateMeParams) (*model.User, error)
	GetProfile(ctx context.Context, username string) (*model.User, error)

	// UsernameAvailable reports whether value is free for the caller. The
	// caller's own username counts as available.
	UsernameAvailable(ctx context.Context, value any) (bool, error)
}

// UpdateMeParams defines the optional profile fields to update.
type UpdateMeParams struct {
	Name        *string
	Username    *string
	DateOfBirth *time.Time
	Bio         *string
	Location    *string
	Website     *string
	Avatar      *string
	CoverPhoto  *string
}

type userUsecase struct {
	userRepo repository.UserRepository
}

func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetMe(ctx context.Context, userID string) (*model.User, error) {
	return u.get(ctx, u.userRepo.GetUser, userID)
}

func (u *userUsecase) GetProfile(ctx context.Context, username string) (*model.User, error) {
	return u.get(ctx, u.userRepo.GetUserByUsername, username)
}

func (u *userUsecase) get(
	ctx context.Context,
	find func(context.Context, string) (*model.User, error),
	key string,
) (*model.User, error) {
	user, err := find(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound.WithMetadata(map[string]any{"user": key})
		}
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) UpdateMe(ctx context.Context, userID string, params UpdateMeParams) (*model.User, error) {
	user, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		Name:        params.Name,
		Username:    params.Username,
		DateOfBirth: params.DateOfBirth,
		Bio:         params.Bio,
		Location:    params.Location,
		Website:     params.Website,
		Avatar:      params.Avatar,
		CoverPhoto:  params.CoverPhoto,
	})
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, repository.ErrNoFieldsToUpdate):
		return u.GetMe(ctx, userID)
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		// Lost a race against the username check.
		return nil, ErrUsernameTaken
	default:
		return nil, err
	}
}

func (u *userUsecase) UsernameAvailable(ctx context.Context, value any) (bool, error) {
	username, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("username rule: unexpected %T", value)
	}

	user, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return true, nil
		}
		return false, err
	}

	if claims, ok := middleware.ClaimsFromContext[types.JWTClaims](ctx); ok && claims.UserID == user.ID.Hex() {
		return true, nil
	}

	return false, nil
}
