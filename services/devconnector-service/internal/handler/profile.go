package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/payload"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/response"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

const (
	msgNoProfile          = "There is no profile for this user"
	msgProfileNotFound    = "Profile not found"
	msgExperienceNotFound = "Experience not found"
	msgEducationNotFound  = "Education not found"
)

// ProfileHandler serves the profile routes. Every route requires an authenticated user.
type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      RequestValidator
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator RequestValidator) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
	}
}

// GetMyProfile returns the caller's profile.
// GET /profile/me
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileUsecase.GetMyProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "failed to get profile")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// UpsertProfile creates or updates the caller's profile.
// POST /profile
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req payload.UpsertProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	profile, err := h.profileUsecase.UpsertProfile(r.Context(), userID, usecase.UpsertProfileParams{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Social: model.Social{
			YouTube:   req.YouTube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			LinkedIn:  req.LinkedIn,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		internalError(w, r, err, "failed to upsert profile")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// ListProfiles returns every profile.
// GET /profile/all
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileUsecase.ListProfiles(r.Context())
	if err != nil {
		internalError(w, r, err, "failed to list profiles")
		return
	}

	if profiles == nil {
		profiles = []*model.Profile{}
	}

	response.JSON(w, http.StatusOK, profiles)
}

// GetProfileByUserID returns the profile of the given user.
// GET /profile/user/{id}
func (h *ProfileHandler) GetProfileByUserID(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.GetProfileByUserID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			response.Error(w, http.StatusNotFound, msgProfileNotFound)
			return
		}

		internalError(w, r, err, "failed to get profile by user id")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// DeleteAccount removes the caller's profile and account.
// DELETE /profile
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.profileUsecase.DeleteAccount(r.Context(), userID); err != nil {
		internalError(w, r, err, "failed to delete account")
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Msg: "User deleted"})
}

// AddExperience prepends a work history entry.
// POST /profile/experience
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req payload.ExperienceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileUsecase.AddExperience(r.Context(), userID, usecase.ExperienceParams{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, r, err, "failed to add experience")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// DeleteExperience removes a work history entry.
// DELETE /profile/experience/{id}
func (h *ProfileHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileUsecase.RemoveExperience(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, "failed to delete experience")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// AddEducation prepends an education entry.
// POST /profile/education
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req payload.EducationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileUsecase.AddEducation(r.Context(), userID, usecase.EducationParams{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		h.writeError(w, r, err, "failed to add education")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// DeleteEducation removes an education entry.
// DELETE /profile/education/{id}
func (h *ProfileHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileUsecase.RemoveEducation(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, "failed to delete education")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// writeError maps errors of routes that act on the caller's own profile.
func (h *ProfileHandler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		response.Error(w, http.StatusBadRequest, msgNoProfile)
	case errors.Is(err, usecase.ErrExperienceNotFound):
		response.Error(w, http.StatusNotFound, msgExperienceNotFound)
	case errors.Is(err, usecase.ErrEducationNotFound):
		response.Error(w, http.StatusNotFound, msgEducationNotFound)
	default:
		internalError(w, r, err, msg)
	}
}

func parseDateRange(fromValue, toValue string) (time.Time, *time.Time, error) {
	from, err := validation.ParseDate(fromValue)
	if err != nil {
		return time.Time{}, nil, err
	}

	if toValue == "" {
		return from, nil, nil
	}

	to, err := validation.ParseDate(toValue)
	if err != nil {
		return time.Time{}, nil, err
	}

	return from, &to, nil
}
