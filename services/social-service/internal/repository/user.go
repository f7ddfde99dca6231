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

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)

	// ConsumeEmailVerifyToken empties the stored email verify token and marks
	// the user verified. It reports false when the token was already empty.
	ConsumeEmailVerifyToken(ctx context.Context, id string) (bool, error)

	// IncrementFollowCounts adds delta to the following count of followerID
	// and to the followers count of followedID.
	IncrementFollowCounts(ctx context.Context, followerID, followedID string, delta int64) error
}

// UpdateUserParams defines the optional parameters for updating a user.
// Only the fields that are not nil will be updated.
type UpdateUserParams struct {
	Name                *string
	Username            *string
	DateOfBirth         *time.Time
	Bio                 *string
	Location            *string
	Website             *string
	Avatar              *string
	CoverPhoto          *string
	PasswordHash        *string
	EmailVerifyToken    *string
	ForgotPasswordToken *string
	Verify              *model.VerifyStatus
}

func (p UpdateUserParams) toSet() bson.M {
	set := bson.M{}
	put := func(key string, v any, ok bool) {
		if ok {
			set[key] = v
		}
	}

	put("name", deref(p.Name), p.Name != nil)
	put("username", deref(p.Username), p.Username != nil)
	put("date_of_birth", deref(p.DateOfBirth), p.DateOfBirth != nil)
	put("bio", deref(p.Bio), p.Bio != nil)
	put("location", deref(p.Location), p.Location != nil)
	put("website", deref(p.Website), p.Website != nil)
	put("avatar", deref(p.Avatar), p.Avatar != nil)
	put("cover_photo", deref(p.CoverPhoto), p.CoverPhoto != nil)
	put("password_hash", deref(p.PasswordHash), p.PasswordHash != nil)
	put("email_verify_token", deref(p.EmailVerifyToken), p.EmailVerifyToken != nil)
	put("forgot_password_token", deref(p.ForgotPasswordToken), p.ForgotPasswordToken != nil)
	put("verify", deref(p.Verify), p.Verify != nil)

	return set
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// ErrNoFieldsToUpdate is returned by UpdateUser when params is empty.
var ErrNoFieldsToUpdate = errors.New("no user fields to update")

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, mongoErr(err)
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userMongoRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *userMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, mongoErr(result.Err())
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	updateMap := params.toSet()
	if len(updateMap) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, mongoErr(result.Err())
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ConsumeEmailVerifyToken(ctx context.Context, id string) (bool, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}

	result, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID, "email_verify_token": bson.M{"$ne": ""}},
		bson.M{"$set": bson.M{
			"email_verify_token": "",
			"verify":             model.Verified,
			"updated_at":         time.Now(),
		}},
	)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}

func (r *userMongoRepository) IncrementFollowCounts(
	ctx context.Context,
	followerID, followedID string,
	delta int64,
) error {
	follower, err := bson.ObjectIDFromHex(followerID)
	if err != nil {
		return ErrNotFound
	}
	followed, err := bson.ObjectIDFromHex(followedID)
	if err != nil {
		return ErrNotFound
	}

	collection := r.db.Collection(userCollection)
	if _, err := collection.UpdateOne(ctx,
		bson.M{"_id": follower},
		bson.M{"$inc": bson.M{"following_count": delta}},
	); err != nil {
		return err
	}

	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": followed},
		bson.M{"$inc": bson.M{"followers_count": delta}},
	)
	return err
}
