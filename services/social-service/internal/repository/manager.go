package repository

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Repositories bundles every repository of the service.
type Repositories struct {
	Users         UserRepository
	RefreshTokens RefreshTokenRepository
	Followers     FollowerRepository
	Identities    IdentityRepository
}

// NewMongoRepositories creates the MongoDB backed repositories, creating
// their indexes.
func NewMongoRepositories(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
	useTransactions bool,
) Repositories {
	return Repositories{
		Users:         NewUserMongoRepository(ctx, logger, db),
		RefreshTokens: NewRefreshTokenMongoRepository(ctx, logger, db, useTransactions),
		Followers:     NewFollowerMongoRepository(ctx, logger, db),
		Identities:    NewIdentityMongoRepository(ctx, logger, db),
	}
}

// SupportsTransactions reports whether the deployment behind db accepts
// multi-document transactions. Only replica sets and sharded clusters do.
func SupportsTransactions(ctx context.Context, db *mongo.Database) (bool, error) {
	var hello bson.M
	if err := db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return false, err
	}
	return helloAllowsTransactions(hello), nil
}

func helloAllowsTransactions(hello bson.M) bool {
	if name, ok := hello["setName"].(string); ok && name != "" {
		return true
	}
	return hello["msg"] == "isdbgrid"
}

// NewMemoryRepositories creates process-local repositories sharing one store.
// Data is lost on restart.
func NewMemoryRepositories() Repositories {
	s := newMemoryStore()

	return Repositories{
		Users:         &userMemoryRepository{s: s},
		RefreshTokens: &refreshTokenMemoryRepository{s: s},
		Followers:     &followerMemoryRepository{s: s},
		Identities:    &identityMemoryRepository{s: s},
	}
}
