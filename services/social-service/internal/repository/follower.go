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

// FollowerRepository defines the interface for follow edge operations.
type FollowerRepository interface {
	// CreateFollower stores the edge. It returns ErrDuplicateKey when the
	// edge already exists.
	CreateFollower(ctx context.Context, follower *model.Follower) (*model.Follower, error)

	// DeleteFollower removes the edge and reports whether it existed.
	DeleteFollower(ctx context.Context, userID, followedUserID string) (bool, error)

	// ListFollowers returns the edges pointing at userID, newest first.
	ListFollowers(ctx context.Context, userID string, params PageParams) ([]*model.Follower, error)

	// ListFollowing returns the edges leaving userID, newest first.
	ListFollowing(ctx context.Context, userID string, params PageParams) ([]*model.Follower, error)
}

// PageParams defines pagination of list queries.
type PageParams struct {
	Limit  uint64
	Offset uint64
}

const followerCollection = "followers"

type followerMongoRepository struct {
	db *mongo.Database
}

func NewFollowerMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) FollowerRepository {
	collection := db.Collection(followerCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "followed_user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "followed_user_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create follower indexes")
	}

	return &followerMongoRepository{db: db}
}

func (r *followerMongoRepository) CreateFollower(
	ctx context.Context,
	follower *model.Follower,
) (*model.Follower, error) {
	follower.CreatedAt = time.Now()

	result, err := r.db.Collection(followerCollection).InsertOne(ctx, follower)
	if err != nil {
		return nil, mongoErr(err)
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		follower.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return follower, nil
}

func (r *followerMongoRepository) DeleteFollower(ctx context.Context, userID, followedUserID string) (bool, error) {
	user, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}
	followed, err := bson.ObjectIDFromHex(followedUserID)
	if err != nil {
		return false, nil
	}

	result, err := r.db.Collection(followerCollection).DeleteOne(ctx, bson.M{
		"user_id":          user,
		"followed_user_id": followed,
	})
	if err != nil {
		return false, err
	}

	return result.DeletedCount > 0, nil
}

func (r *followerMongoRepository) ListFollowers(
	ctx context.Context,
	userID string,
	params PageParams,
) ([]*model.Follower, error) {
	return r.list(ctx, "followed_user_id", userID, params)
}

func (r *followerMongoRepository) ListFollowing(
	ctx context.Context,
	userID string,
	params PageParams,
) ([]*model.Follower, error) {
	return r.list(ctx, "user_id", userID, params)
}

func (r *followerMongoRepository) list(
	ctx context.Context,
	field, userID string,
	params PageParams,
) ([]*model.Follower, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	findOptions := options.Find()

	limit := params.Limit
	if limit == 0 {
		limit = 10
	}
	findOptions.SetLimit(int64(limit))

	if params.Offset > 0 {
		findOptions.SetSkip(int64(params.Offset))
	}
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(followerCollection).Find(ctx, bson.M{field: objectID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var followers []*model.Follower
	for cursor.Next(ctx) {
		var follower model.Follower
		if err := cursor.Decode(&follower); err != nil {
			return nil, err
		}
		followers = append(followers, &follower)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return followers, nil
}
