package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/repository"
)

// ProfileUsecase defines the business logic for developer profiles.
type ProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, userID string, params UpsertProfileParams) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]*model.Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)

	// DeleteAccount removes the user's profile and then the user.
	DeleteAccount(ctx context.Context, userID string) error

	AddExperience(ctx context.Context, userID string, params ExperienceParams) (*model.Profile, error)
	RemoveExperience(ctx context.Context, userID, experienceID string) (*model.Profile, error)
	AddEducation(ctx context.Context, userID string, params EducationParams) (*model.Profile, error)
	RemoveEducation(ctx context.Context, userID, educationID string) (*model.Profile, error)
}

// UpsertProfileParams defines the fields written by UpsertProfile.
type UpsertProfileParams struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         []string
	Social         model.Social
}

// ExperienceParams defines a new work history entry.
type ExperienceParams struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationParams defines a new education entry.
type EducationParams struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrEducationNotFound  = errors.New("education not found")
)

type profileUsecase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileUsecase creates a new instance of ProfileUsecase.
func NewProfileUsecase(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (u *profileUsecase) GetMyProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := u.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, profileError(err, "get profile")
	}

	return profile, nil
}

func (u *profileUsecase) UpsertProfile(
	ctx context.Context,
	userID string,
	params UpsertProfileParams,
) (*model.Profile, error) {
	profile, err := u.profileRepo.UpsertProfile(ctx, userID, repository.UpsertProfileParams{
		Company:        params.Company,
		Website:        params.Website,
		Location:       params.Location,
		Bio:            params.Bio,
		Status:         params.Status,
		GithubUsername: params.GithubUsername,
		Skills:         params.Skills,
		Social:         params.Social,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	return profile, nil
}

func (u *profileUsecase) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	profiles, err := u.profileRepo.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

func (u *profileUsecase) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := u.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, profileError(err, "get profile by user id")
	}

	return profile, nil
}

func (u *profileUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := u.profileRepo.DeleteProfileByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if err := u.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (u *profileUsecase) AddExperience(
	ctx context.Context,
	userID string,
	params ExperienceParams,
) (*model.Profile, error) {
	profile, err := u.profileRepo.AddExperience(ctx, userID, model.Experience{
		Title:       params.Title,
		Company:     params.Company,
		Location:    params.Location,
		From:        params.From,
		To:          params.To,
		Current:     params.Current,
		Description: params.Description,
	})
	if err != nil {
		return nil, profileError(err, "add experience")
	}

	return profile, nil
}

func (u *profileUsecase) RemoveExperience(ctx context.Context, userID, experienceID string) (*model.Profile, error) {
	profile, err := u.profileRepo.RemoveExperience(ctx, userID, experienceID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil, ErrExperienceNotFound
		}

		return nil, profileError(err, "remove experience")
	}

	return profile, nil
}

func (u *profileUsecase) AddEducation(
	ctx context.Context,
	userID string,
	params EducationParams,
) (*model.Profile, error) {
	profile, err := u.profileRepo.AddEducation(ctx, userID, model.Education{
		School:       params.School,
		Degree:       params.Degree,
		FieldOfStudy: params.FieldOfStudy,
		From:         params.From,
		To:           params.To,
		Current:      params.Current,
		Description:  params.Description,
	})
	if err != nil {
		return nil, profileError(err, "add education")
	}

	return profile, nil
}

func (u *profileUsecase) RemoveEducation(ctx context.Context, userID, educationID string) (*model.Profile, error) {
	profile, err := u.profileRepo.RemoveEducation(ctx, userID, educationID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil, ErrEducationNotFound
		}

		return nil, profileError(err, "remove education")
	}

	return profile, nil
}

// profileError maps a missing profile or an unparseable user id to ErrProfileNotFound.
func profileError(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrInvalidID) {
		return ErrProfileNotFound
	}

	return fmt.Errorf("%s: %w", op, err)
}
