package handler

import (
	"context"
	"net/http"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/payload"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/social-api/shared/response"
	v "github.com/vasapolrittideah/social-api/shared/validation"
)

func (h *httpHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, "success.health", nil)
}

func (h *httpHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetMe(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.get_me", payload.NewMeResponse(user))
}

func (h *httpHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.UpdateMeRequest](r.Context())

	user, err := h.users.UpdateMe(r.Context(), claimsFrom(r).UserID, usecase.UpdateMeParams{
		Name:        req.Name,
		Username:    req.Username,
		DateOfBirth: req.DateOfBirth,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
		Avatar:      req.Avatar,
		CoverPhoto:  req.CoverPhoto,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.update_me", payload.NewMeResponse(user))
}

func (h *httpHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	params, _ := v.Data[payload.ProfileParams](r.Context())

	user, err := h.users.GetProfile(r.Context(), params.Username)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.get_profile", payload.NewProfileResponse(user))
}

func (h *httpHandler) Follow(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.FollowRequest](r.Context())

	created, err := h.follow.Follow(r.Context(), claimsFrom(r).UserID, req.FollowedUserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if !created {
		response.OK(w, r, "success.already_followed", nil)
		return
	}
	response.OK(w, r, "success.follow", nil)
}

func (h *httpHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	params, _ := v.Data[payload.UserIDParams](r.Context())

	removed, err := h.follow.Unfollow(r.Context(), claimsFrom(r).UserID, params.UserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if !removed {
		response.OK(w, r, "success.already_unfollowed", nil)
		return
	}
	response.OK(w, r, "success.unfollow", nil)
}

func (h *httpHandler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	h.listFollows(w, r, "success.get_followers", h.follow.ListFollowers)
}

func (h *httpHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	h.listFollows(w, r, "success.get_following", h.follow.ListFollowing)
}

type listFunc = func(ctx context.Context, userID string, page repository.PageParams) ([]*model.User, error)

func (h *httpHandler) listFollows(w http.ResponseWriter, r *http.Request, key string, list listFunc) {
	params, _ := v.Data[payload.UserIDParams](r.Context())
	query, _ := v.Data[payload.PageQuery](r.Context())

	users, err := list(r.Context(), params.UserID, repository.PageParams{
		Limit:  query.Limit,
		Offset: query.Offset(),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, key, map[string]any{
		"users": payload.NewProfileList(users),
		"limit": query.Limit,
		"page":  query.Page,
	})
}

func (h *httpHandler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.UploadURLRequest](r.Context())

	upload, err := h.media.CreateUploadURL(r.Context(), claimsFrom(r).UserID, req.Filename, req.ContentType)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.upload_url", upload)
}
