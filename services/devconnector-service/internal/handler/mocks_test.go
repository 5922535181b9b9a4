package handler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

// --- Mocks ---

type mockAuthUsecase struct {
	registerFn       func(ctx context.Context, params usecase.RegisterParams) (string, error)
	loginFn          func(ctx context.Context, params usecase.LoginParams) (string, error)
	getCurrentUserFn func(ctx context.Context, userID string) (*model.User, error)
	userExistsFn     func(ctx context.Context, userID string) (bool, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, params usecase.RegisterParams) (string, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, params)
	}
	return "", nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, params usecase.LoginParams) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, params)
	}
	return "", nil
}

func (m *mockAuthUsecase) GetCurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if m.getCurrentUserFn != nil {
		return m.getCurrentUserFn(ctx, userID)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockAuthUsecase) UserExists(ctx context.Context, userID string) (bool, error) {
	if m.userExistsFn != nil {
		return m.userExistsFn(ctx, userID)
	}
	return true, nil
}

type mockProfileUsecase struct {
	getMyProfileFn       func(ctx context.Context, userID string) (*model.Profile, error)
	upsertProfileFn      func(ctx context.Context, userID string, params usecase.UpsertProfileParams) (*model.Profile, error)
	listProfilesFn       func(ctx context.Context) ([]*model.Profile, error)
	getProfileByUserIDFn func(ctx context.Context, userID string) (*model.Profile, error)
	deleteAccountFn      func(ctx context.Context, userID string) error
	addExperienceFn      func(ctx context.Context, userID string, params usecase.ExperienceParams) (*model.Profile, error)
	removeExperienceFn   func(ctx context.Context, userID, id string) (*model.Profile, error)
	addEducationFn       func(ctx context.Context, userID string, params usecase.EducationParams) (*model.Profile, error)
	removeEducationFn    func(ctx context.Context, userID, id string) (*model.Profile, error)
}

func (m *mockProfileUsecase) GetMyProfile(ctx context.Context, userID string) (*model.Profile, error) {
	if m.getMyProfileFn != nil {
		return m.getMyProfileFn(ctx, userID)
	}
	return nil, usecase.ErrProfileNotFound
}

func (m *mockProfileUsecase) UpsertProfile(
	ctx context.Context,
	userID string,
	params usecase.UpsertProfileParams,
) (*model.Profile, error) {
	if m.upsertProfileFn != nil {
		return m.upsertProfileFn(ctx, userID, params)
	}
	return &model.Profile{}, nil
}

func (m *mockProfileUsecase) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	if m.listProfilesFn != nil {
		return m.listProfilesFn(ctx)
	}
	return nil, nil
}

func (m *mockProfileUsecase) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if m.getProfileByUserIDFn != nil {
		return m.getProfileByUserIDFn(ctx, userID)
	}
	return nil, usecase.ErrProfileNotFound
}

func (m *mockProfileUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if m.deleteAccountFn != nil {
		return m.deleteAccountFn(ctx, userID)
	}
	return nil
}

func (m *mockProfileUsecase) AddExperience(
	ctx context.Context,
	userID string,
	params usecase.ExperienceParams,
) (*model.Profile, error) {
	if m.addExperienceFn != nil {
		return m.addExperienceFn(ctx, userID, params)
	}
	return &model.Profile{}, nil
}

func (m *mockProfileUsecase) RemoveExperience(ctx context.Context, userID, id string) (*model.Profile, error) {
	if m.removeExperienceFn != nil {
		return m.removeExperienceFn(ctx, userID, id)
	}
	return &model.Profile{}, nil
}

func (m *mockProfileUsecase) AddEducation(
	ctx context.Context,
	userID string,
	params usecase.EducationParams,
) (*model.Profile, error) {
	if m.addEducationFn != nil {
		return m.addEducationFn(ctx, userID, params)
	}
	return &model.Profile{}, nil
}

func (m *mockProfileUsecase) RemoveEducation(ctx context.Context, userID, id string) (*model.Profile, error) {
	if m.removeEducationFn != nil {
		return m.removeEducationFn(ctx, userID, id)
	}
	return &model.Profile{}, nil
}

// --- Helpers ---

func newTestValidator(t *testing.T) *validation.Validator {
	t.Helper()

	v, err := validation.New()
	require.NoError(t, err)

	return v
}

func nopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
