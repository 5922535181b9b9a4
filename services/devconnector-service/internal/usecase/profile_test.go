package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/model"
)

func newProfileFixture() (*fakeProfileRepo, *fakeUserRepo, ProfileUsecase) {
	profiles := newFakeProfileRepo()
	users := newFakeUserRepo()

	return profiles, users, NewProfileUsecase(profiles, users)
}

func TestGetMyProfile_NotFound(t *testing.T) {
	_, _, uc := newProfileFixture()

	_, err := uc.GetMyProfile(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetProfileByUserID_MalformedID(t *testing.T) {
	_, _, uc := newProfileFixture()

	_, err := uc.GetProfileByUserID(context.Background(), "123")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetProfileByUserID_StoreFailure(t *testing.T) {
	profiles, _, uc := newProfileFixture()
	profiles.err = errStoreDown

	_, err := uc.GetProfileByUserID(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}

func TestUpsertProfile_CreatesThenUpdates(t *testing.T) {
	_, _, uc := newProfileFixture()
	ctx := context.Background()
	userID := bson.NewObjectID().Hex()

	created, err := uc.UpsertProfile(ctx, userID, UpsertProfileParams{
		Status:  "Developer",
		Company: "Acme",
		Skills:  []string{"go", "mongo"},
		Social:  model.Social{Twitter: "https://twitter.com/a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Company)

	updated, err := uc.UpsertProfile(ctx, userID, UpsertProfileParams{
		Status: "Senior Developer",
		Skills: []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, []string{"go"}, updated.Skills)
	assert.Empty(t, updated.Social.Twitter)

	mine, err := uc.GetMyProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, updated, mine)
}

func TestListProfiles_Empty(t *testing.T) {
	_, _, uc := newProfileFixture()

	profiles, err := uc.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestDeleteAccount(t *testing.T) {
	profiles, users, uc := newProfileFixture()
	ctx := context.Background()

	user, err := users.CreateUser(ctx, &model.User{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	userID := user.ID.Hex()

	_, err = uc.UpsertProfile(ctx, userID, UpsertProfileParams{Status: "Developer", Skills: []string{"go"}})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteAccount(ctx, userID))
	assert.Empty(t, profiles.profiles)
	assert.Empty(t, users.users)
}

func TestDeleteAccount_ProfileFailureKeepsUser(t *testing.T) {
	profiles, users, uc := newProfileFixture()
	ctx := context.Background()

	user, err := users.CreateUser(ctx, &model.User{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	profiles.err = errStoreDown

	assert.ErrorIs(t, uc.DeleteAccount(ctx, user.ID.Hex()), errStoreDown)
	assert.Len(t, users.users, 1)
}

func TestExperience(t *testing.T) {
	_, _, uc := newProfileFixture()
	ctx := context.Background()
	userID := bson.NewObjectID().Hex()
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.AddExperience(ctx, userID, ExperienceParams{Title: "Dev", Company: "Acme", From: from})
	require.ErrorIs(t, err, ErrProfileNotFound)

	_, err = uc.UpsertProfile(ctx, userID, UpsertProfileParams{Status: "Developer", Skills: []string{"go"}})
	require.NoError(t, err)

	_, err = uc.AddExperience(ctx, userID, ExperienceParams{Title: "Junior", Company: "Acme", From: from})
	require.NoError(t, err)
	profile, err := uc.AddExperience(ctx, userID, ExperienceParams{Title: "Senior", Company: "Acme", From: from, Current: true})
	require.NoError(t, err)

	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Senior", profile.Experience[0].Title)
	assert.Equal(t, "Junior", profile.Experience[1].Title)

	_, err = uc.RemoveExperience(ctx, userID, bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrExperienceNotFound)
	assert.Len(t, profile.Experience, 2)

	profile, err = uc.RemoveExperience(ctx, userID, profile.Experience[1].ID.Hex())
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Senior", profile.Experience[0].Title)
}

func TestEducation(t *testing.T) {
	_, _, uc := newProfileFixture()
	ctx := context.Background()
	userID := bson.NewObjectID().Hex()
	from := time.Date(2012, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.RemoveEducation(ctx, userID, bson.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrProfileNotFound)

	_, err = uc.UpsertProfile(ctx, userID, UpsertProfileParams{Status: "Developer", Skills: []string{"go"}})
	require.NoError(t, err)

	profile, err := uc.AddEducation(ctx, userID, EducationParams{School: "MIT", FieldOfStudy: "CS", From: from})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "CS", profile.Education[0].FieldOfStudy)

	_, err = uc.RemoveEducation(ctx, userID, "nope")
	assert.ErrorIs(t, err, ErrEducationNotFound)

	profile, err = uc.RemoveEducation(ctx, userID, profile.Education[0].ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, profile.Education)
}
