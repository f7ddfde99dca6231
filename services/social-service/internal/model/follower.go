package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Follower is the edge UserID -> FollowedUserID.
type Follower struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	UserID         bson.ObjectID `bson:"user_id"`
	FollowedUserID bson.ObjectID `bson:"followed_user_id"`
	CreatedAt      time.Time     `bson:"created_at"`
}
