package payload

import (
	"time"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
)

type UpdateMeRequest struct {
	Name        *string    `json:"name"          mod:"trim" validate:"omitempty,min=1,max=100"`
	Username    *string    `json:"username"      mod:"trim" validate:"omitempty,min=4,max=15,username" check:"unique_username"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Bio         *string    `json:"bio"           mod:"trim" validate:"omitempty,max=200"`
	Location    *string    `json:"location"      mod:"trim" validate:"omitempty,max=200"`
	Website     *string    `json:"website"       mod:"trim" validate:"omitempty,url,max=200"`
	Avatar      *string    `json:"avatar"        mod:"trim" validate:"omitempty,url,max=400"`
	CoverPhoto  *string    `json:"cover_photo"   mod:"trim" validate:"omitempty,url,max=400"`
}

type ProfileParams struct {
	Username string `param:"username" validate:"required,max=50"`
}

type UserIDParams struct {
	UserID string `param:"user_id" validate:"required,mongodb"`
}

type FollowRequest struct {
	FollowedUserID string `json:"followed_user_id" mod:"trim" validate:"required,mongodb"`
}

type PageQuery struct {
	Limit uint64 `query:"limit" mod:"default=10" validate:"min=1,max=100"`
	Page  uint64 `query:"page"  mod:"default=1"  validate:"min=1,max=100000"`
}

// Offset returns the number of items to skip.
func (q PageQuery) Offset() uint64 {
	return (q.Page - 1) * q.Limit
}

type UploadURLRequest struct {
	Filename    string `json:"filename"     mod:"trim" validate:"required,max=255"`
	ContentType string `json:"content_type" mod:"trim" validate:"required,max=100"`
}

// UserResponse is the public view of a user. Email is only set for the
// user's own profile.
type UserResponse struct {
	ID             string     `json:"_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	Username       string     `json:"username"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Verify         string     `json:"verify"`
	Bio            string     `json:"bio"`
	Location       string     `json:"location"`
	Website        string     `json:"website"`
	Avatar         string     `json:"avatar"`
	CoverPhoto     string     `json:"cover_photo"`
	FollowersCount int64      `json:"followers_count"`
	FollowingCount int64      `json:"following_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewMeResponse renders the caller's own profile.
func NewMeResponse(u *model.User) UserResponse {
	r := NewProfileResponse(u)
	r.Email = u.Email
	return r
}

// NewProfileResponse renders another user's profile.
func NewProfileResponse(u *model.User) UserResponse {
	r := UserResponse{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Username:       u.Username,
		Verify:         u.Verify.String(),
		Bio:            u.Bio,
		Location:       u.Location,
		Website:        u.Website,
		Avatar:         u.Avatar,
		CoverPhoto:     u.CoverPhoto,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if !u.DateOfBirth.IsZero() {
		dob := u.DateOfBirth
		r.DateOfBirth = &dob
	}
	return r
}

// NewProfileList renders a list of users.
func NewProfileList(users []*model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewProfileResponse(u))
	}
	return out
}
