package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// VerifyStatus is the verification state of a user account.
type VerifyStatus int

const (
	Unverified VerifyStatus = iota
	Verified
	Banned
)

func (s VerifyStatus) String() string {
	switch s {
	case Unverified:
		return "unverified"
	case Verified:
		return "verified"
	case Banned:
		return "banned"
	default:
		return "unknown"
	}
}

// User represents an account of the social network.
// EmailVerifyToken is emptied once the email has been verified.
type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"`
	Name                string        `bson:"name"`
	Email               string        `bson:"email"`
	Username            string        `bson:"username"`
	DateOfBirth         time.Time     `bson:"date_of_birth"`
	PasswordHash        string        `bson:"password_hash"`
	EmailVerifyToken    string        `bson:"email_verify_token"`
	ForgotPasswordToken string        `bson:"forgot_password_token"`
	Verify              VerifyStatus  `bson:"verify"`
	Bio                 string        `bson:"bio"`
	Location            string        `bson:"location"`
	Website             string        `bson:"website"`
	Avatar              string        `bson:"avatar"`
	CoverPhoto          string        `bson:"cover_photo"`
	FollowersCount      int64         `bson:"followers_count"`
	FollowingCount      int64         `bson:"following_count"`
	CreatedAt           time.Time     `bson:"created_at"`
	UpdatedAt           time.Time     `bson:"updated_at"`
}
