package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
)

// memoryStore backs every in-memory repository with one lock so that
// multi-collection operations stay consistent.
type memoryStore struct {
	mu            sync.RWMutex
	users         map[bson.ObjectID]model.User
	refreshTokens map[bson.ObjectID]model.RefreshToken
	followers     map[bson.ObjectID]model.Follower
	identities    map[bson.ObjectID]model.Identity
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:         make(map[bson.ObjectID]model.User),
		refreshTokens: make(map[bson.ObjectID]model.RefreshToken),
		followers:     make(map[bson.ObjectID]model.Follower),
		identities:    make(map[bson.ObjectID]model.Identity),
	}
}

type userMemoryRepository struct{ s *memoryStore }

func (r *userMemoryRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email || (user.Username != "" && u.Username == user.Username) {
			return nil, ErrDuplicateKey
		}
	}

	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user

	return user, nil
}

func (r *userMemoryRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[objectID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *userMemoryRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *userMemoryRepository) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Username == username })
}

func (r *userMemoryRepository) find(match func(model.User) bool) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userMemoryRepository) UpdateUser(_ context.Context, id string, params UpdateUserParams) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if len(params.toSet()) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[objectID]
	if !ok {
		return nil, ErrNotFound
	}

	if params.Username != nil {
		for otherID, other := range r.s.users {
			if otherID != objectID && other.Username == *params.Username {
				return nil, ErrDuplicateKey
			}
		}
	}

	assign(&u.Name, params.Name)
	assign(&u.Username, params.Username)
	assign(&u.DateOfBirth, params.DateOfBirth)
	assign(&u.Bio, params.Bio)
	assign(&u.Location, params.Location)
	assign(&u.Website, params.Website)
	assign(&u.Avatar, params.Avatar)
	assign(&u.CoverPhoto, params.CoverPhoto)
	assign(&u.PasswordHash, params.PasswordHash)
	assign(&u.EmailVerifyToken, params.EmailVerifyToken)
	assign(&u.ForgotPasswordToken, params.ForgotPasswordToken)
	assign(&u.Verify, params.Verify)
	u.UpdatedAt = time.Now()

	r.s.users[objectID] = u
	return &u, nil
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (r *userMemoryRepository) ConsumeEmailVerifyToken(_ context.Context, id string) (bool, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[objectID]
	if !ok || u.EmailVerifyToken == "" {
		return false, nil
	}

	u.EmailVerifyToken = ""
	u.Verify = model.Verified
	u.UpdatedAt = time.Now()
	r.s.users[objectID] = u

	return true, nil
}

func (r *userMemoryRepository) IncrementFollowCounts(_ context.Context, followerID, followedID string, delta int64) error {
	follower, err := bson.ObjectIDFromHex(followerID)
	if err != nil {
		return ErrNotFound
	}
	followed, err := bson.ObjectIDFromHex(followedID)
	if err != nil {
		return ErrNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u, ok := r.s.users[follower]; ok {
		u.FollowingCount += delta
		r.s.users[follower] = u
	}
	if u, ok := r.s.users[followed]; ok {
		u.FollowersCount += delta
		r.s.users[followed] = u
	}

	return nil
}

type refreshTokenMemoryRepository struct{ s *memoryStore }

func (r *refreshTokenMemoryRepository) CreateToken(_ context.Context, token *model.RefreshToken) (*model.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.create(token)
}

func (r *refreshTokenMemoryRepository) create(token *model.RefreshToken) (*model.RefreshToken, error) {
	for _, t := range r.s.refreshTokens {
		if t.Token == token.Token {
			return nil, ErrDuplicateKey
		}
	}

	token.ID = bson.NewObjectID()
	token.CreatedAt = time.Now()
	r.s.refreshTokens[token.ID] = *token

	return token, nil
}

func (r *refreshTokenMemoryRepository) GetToken(_ context.Context, userID, token string) (*model.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.lookup(userID, token)
	if !ok {
		return nil, ErrNotFound
	}
	t := r.s.refreshTokens[id]
	return &t, nil
}

func (r *refreshTokenMemoryRepository) DeleteToken(_ context.Context, userID, token string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.lookup(userID, token)
	if ok {
		delete(r.s.refreshTokens, id)
	}
	return ok, nil
}

func (r *refreshTokenMemoryRepository) DeleteUserTokens(_ context.Context, userID string) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, t := range r.s.refreshTokens {
		if t.UserID == objectID {
			delete(r.s.refreshTokens, id)
			n++
		}
	}
	return n, nil
}

func (r *refreshTokenMemoryRepository) RotateToken(
	_ context.Context,
	userID, oldToken string,
	next *model.RefreshToken,
) (*model.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.lookup(userID, oldToken)
	if !ok {
		return nil, ErrNotFound
	}

	old := r.s.refreshTokens[id]
	delete(r.s.refreshTokens, id)

	created, err := r.create(next)
	if err != nil {
		r.s.refreshTokens[id] = old
		return nil, err
	}
	return created, nil
}

func (r *refreshTokenMemoryRepository) lookup(userID, token string) (bson.ObjectID, bool) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return bson.ObjectID{}, false
	}
	for id, t := range r.s.refreshTokens {
		if t.UserID == objectID && t.Token == token {
			return id, true
		}
	}
	return bson.ObjectID{}, false
}

type followerMemoryRepository struct{ s *memoryStore }

func (r *followerMemoryRepository) CreateFollower(_ context.Context, follower *model.Follower) (*model.Follower, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, f := range r.s.followers {
		if f.UserID == follower.UserID && f.FollowedUserID == follower.FollowedUserID {
			return nil, ErrDuplicateKey
		}
	}

	follower.ID = bson.NewObjectID()
	follower.CreatedAt = time.Now()
	r.s.followers[follower.ID] = *follower

	return follower, nil
}

func (r *followerMemoryRepository) DeleteFollower(_ context.Context, userID, followedUserID string) (bool, error) {
	user, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}
	followed, err := bson.ObjectIDFromHex(followedUserID)
	if err != nil {
		return false, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, f := range r.s.followers {
		if f.UserID == user && f.FollowedUserID == followed {
			delete(r.s.followers, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *followerMemoryRepository) ListFollowers(_ context.Context, userID string, params PageParams) ([]*model.Follower, error) {
	return r.list(userID, params, func(f model.Follower) bson.ObjectID { return f.FollowedUserID })
}

func (r *followerMemoryRepository) ListFollowing(_ context.Context, userID string, params PageParams) ([]*model.Follower, error) {
	return r.list(userID, params, func(f model.Follower) bson.ObjectID { return f.UserID })
}

func (r *followerMemoryRepository) list(
	userID string,
	params PageParams,
	key func(model.Follower) bson.ObjectID,
) ([]*model.Follower, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	r.s.mu.RLock()
	var out []*model.Follower
	for _, f := range r.s.followers {
		if key(f) == objectID {
			out = append(out, &f)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	limit := params.Limit
	if limit == 0 {
		limit = 10
	}
	if params.Offset >= uint64(len(out)) {
		return nil, nil
	}
	out = out[params.Offset:]
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type identityMemoryRepository struct{ s *memoryStore }

func (r *identityMemoryRepository) CreateIdentity(_ context.Context, identity *model.Identity) (*model.Identity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, i := range r.s.identities {
		if i.Provider == identity.Provider && i.ProviderID == identity.ProviderID {
			return nil, ErrDuplicateKey
		}
	}

	now := time.Now()
	identity.ID = bson.NewObjectID()
	identity.CreatedAt = now
	identity.UpdatedAt = now
	identity.LastLoginAt = now
	r.s.identities[identity.ID] = *identity

	return identity, nil
}

func (r *identityMemoryRepository) GetIdentityByProvider(
	_ context.Context,
	providerID string,
	provider string,
) (*model.Identity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, i := range r.s.identities {
		if i.Provider == provider && i.ProviderID == providerID {
			return &i, nil
		}
	}
	return nil, ErrNotFound
}

func (r *identityMemoryRepository) UpdateLastLogin(_ context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.identities[objectID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now()
	i.LastLoginAt = now
	i.UpdatedAt = now
	r.s.identities[objectID] = i

	return nil
}
