package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
)

// RefreshTokenRepository defines the interface for refresh token persistence.
type RefreshTokenRepository interface {
	// CreateToken stores a newly issued refresh token.
	CreateToken(ctx context.Context, token *model.RefreshToken) (*model.RefreshToken, error)

	// GetToken returns the record of token owned by userID.
	GetToken(ctx context.Context, userID, token string) (*model.RefreshToken, error)

	// DeleteToken removes the record of token owned by userID. It reports
	// whether a record was removed.
	DeleteToken(ctx context.Context, userID, token string) (bool, error)

	// DeleteUserTokens removes every refresh token of userID.
	DeleteUserTokens(ctx context.Context, userID string) (int64, error)

	// RotateToken deletes oldToken and stores next as one unit of work.
	// It returns ErrNotFound, storing nothing, when oldToken does not exist.
	RotateToken(ctx context.Context, userID, oldToken string, next *model.RefreshToken) (*model.RefreshToken, error)
}

const refreshTokenCollection = "refresh_tokens"

type refreshTokenMongoRepository struct {
	db              *mongo.Database
	useTransactions bool
}

// NewRefreshTokenMongoRepository creates a new MongoDB repository for refresh tokens.
// Rotation runs inside a multi-document transaction when useTransactions is
// set, which requires a replica set; otherwise the old record is deleted
// before the new one is inserted.
func NewRefreshTokenMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
	useTransactions bool,
) RefreshTokenRepository {
	collection := db.Collection(refreshTokenCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create refresh token indexes")
	}

	return &refreshTokenMongoRepository{
		db:              db,
		useTransactions: useTransactions,
	}
}

func (r *refreshTokenMongoRepository) CreateToken(
	ctx context.Context,
	token *model.RefreshToken,
) (*model.RefreshToken, error) {
	token.CreatedAt = time.Now()

	result, err := r.db.Collection(refreshTokenCollection).InsertOne(ctx, token)
	if err != nil {
		return nil, mongoErr(err)
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		token.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return token, nil
}

func (r *refreshTokenMongoRepository) GetToken(
	ctx context.Context,
	userID, token string,
) (*model.RefreshToken, error) {
	filter, err := tokenFilter(userID, token)
	if err != nil {
		return nil, err
	}

	var record model.RefreshToken
	err = r.db.Collection(refreshTokenCollection).FindOne(ctx, filter).Decode(&record)
	if err != nil {
		return nil, mongoErr(err)
	}

	return &record, nil
}

func (r *refreshTokenMongoRepository) DeleteToken(ctx context.Context, userID, token string) (bool, error) {
	filter, err := tokenFilter(userID, token)
	if err != nil {
		return false, nil
	}

	result, err := r.db.Collection(refreshTokenCollection).DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}

	return result.DeletedCount > 0, nil
}

func (r *refreshTokenMongoRepository) DeleteUserTokens(ctx context.Context, userID string) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}

	result, err := r.db.Collection(refreshTokenCollection).DeleteMany(ctx, bson.M{"user_id": objectID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *refreshTokenMongoRepository) RotateToken(
	ctx context.Context,
	userID, oldToken string,
	next *model.RefreshToken,
) (*model.RefreshToken, error) {
	if !r.useTransactions {
		return r.rotate(ctx, userID, oldToken, next)
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return r.rotate(ctx, userID, oldToken, next)
	})
	if err != nil {
		return nil, err
	}

	return result.(*model.RefreshToken), nil
}

func (r *refreshTokenMongoRepository) rotate(
	ctx context.Context,
	userID, oldToken string,
	next *model.RefreshToken,
) (*model.RefreshToken, error) {
	deleted, err := r.DeleteToken(ctx, userID, oldToken)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrNotFound
	}

	return r.CreateToken(ctx, next)
}

func tokenFilter(userID, token string) (bson.M, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	return bson.M{"user_id": objectID, "token": token}, nil
}
