package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/model"
)

// ErrEntryNotFound is returned when an experience or education entry does not exist on the profile.
var ErrEntryNotFound = errors.New("profile entry not found")

// ProfileRepository defines the interface for profile-related database operations.
// Profiles are addressed by their owner's user id. Every returned profile carries its Owner.
type ProfileRepository interface {
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]*model.Profile, error)
	UpsertProfile(ctx context.Context, userID string, params UpsertProfileParams) (*model.Profile, error)
	DeleteProfileByUserID(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, experience model.Experience) (*model.Profile, error)
	RemoveExperience(ctx context.Context, userID, experienceID string) (*model.Profile, error)
	AddEducation(ctx context.Context, userID string, education model.Education) (*model.Profile, error)
	RemoveEducation(ctx context.Context, userID, educationID string) (*model.Profile, error)
}

// UpsertProfileParams holds the profile fields to write.
// Empty strings leave the stored value untouched; Social replaces the stored links.
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

const (
	profileCollection = "profiles"
	experienceField   = "experience"
	educationField    = "education"
)

type profileMongoRepository struct {
	db *mongo.Database
}

// NewProfileMongoRepository returns a ProfileRepository backed by db and ensures one profile per user.
func NewProfileMongoRepository(ctx context.Context, db *mongo.Database) (ProfileRepository, error) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := db.Collection(profileCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create profile indexes: %w", err)
	}

	return &profileMongoRepository{db: db}, nil
}

func (r *profileMongoRepository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	profiles, err := r.aggregate(ctx, bson.M{"user": objectID})
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return profiles[0], nil
}

func (r *profileMongoRepository) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	return r.aggregate(ctx, bson.M{})
}

func (r *profileMongoRepository) UpsertProfile(
	ctx context.Context,
	userID string,
	params UpsertProfileParams,
) (*model.Profile, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	// Build update query
	set := bson.M{
		"status": params.Status,
		"skills": params.Skills,
		"social": params.Social,
	}
	optional := map[string]string{
		"company":         params.Company,
		"website":         params.Website,
		"location":        params.Location,
		"bio":             params.Bio,
		"github_username": params.GithubUsername,
	}
	for field, value := range optional {
		if value != "" {
			set[field] = value
		}
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"created_at":    time.Now().UTC(),
			experienceField: bson.A{},
			educationField:  bson.A{},
		},
	}

	collection := r.db.Collection(profileCollection)
	filter := bson.M{"user": objectID}
	opts := options.UpdateOne().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert inserted the profile first; this attempt now matches it.
		_, err = collection.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return nil, err
	}

	return r.GetProfileByUserID(ctx, userID)
}

func (r *profileMongoRepository) DeleteProfileByUserID(ctx context.Context, userID string) error {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(profileCollection).DeleteOne(ctx, bson.M{"user": objectID})
	return err
}

func (r *profileMongoRepository) AddExperience(
	ctx context.Context,
	userID string,
	experience model.Experience,
) (*model.Profile, error) {
	if experience.ID.IsZero() {
		experience.ID = bson.NewObjectID()
	}

	return r.prependEntry(ctx, userID, experienceField, experience)
}

func (r *profileMongoRepository) RemoveExperience(ctx context.Context, userID, experienceID string) (*model.Profile, error) {
	return r.pullEntry(ctx, userID, experienceField, experienceID)
}

func (r *profileMongoRepository) AddEducation(
	ctx context.Context,
	userID string,
	education model.Education,
) (*model.Profile, error) {
	if education.ID.IsZero() {
		education.ID = bson.NewObjectID()
	}

	return r.prependEntry(ctx, userID, educationField, education)
}

func (r *profileMongoRepository) RemoveEducation(ctx context.Context, userID, educationID string) (*model.Profile, error) {
	return r.pullEntry(ctx, userID, educationField, educationID)
}

// prependEntry pushes entry to the front of the list so the newest entry comes first.
func (r *profileMongoRepository) prependEntry(ctx context.Context, userID, field string, entry any) (*model.Profile, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	result, err := r.db.Collection(profileCollection).UpdateOne(
		ctx,
		bson.M{"user": objectID},
		bson.M{"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return r.GetProfileByUserID(ctx, userID)
}

// pullEntry removes the entry with the given id. It returns mongo.ErrNoDocuments
// when the profile is missing and ErrEntryNotFound when only the entry is.
func (r *profileMongoRepository) pullEntry(ctx context.Context, userID, field, entryID string) (*model.Profile, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	entryObjectID, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		if _, getErr := r.GetProfileByUserID(ctx, userID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrEntryNotFound
	}

	result, err := r.db.Collection(profileCollection).UpdateOne(
		ctx,
		bson.M{"user": objectID, field + "._id": entryObjectID},
		bson.M{"$pull": bson.M{field: bson.M{"_id": entryObjectID}}},
	)
	if err != nil {
		return nil, err
	}

	profile, err := r.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrEntryNotFound
	}

	return profile, nil
}

// aggregate loads profiles matching filter joined with the public fields of their owner.
func (r *profileMongoRepository) aggregate(ctx context.Context, filter bson.M) ([]*model.Profile, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: userCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "owner.email", Value: 0},
			{Key: "owner.password_hash", Value: 0},
			{Key: "owner.created_at", Value: 0},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.db.Collection(profileCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []*model.Profile{}
	for cursor.Next(ctx) {
		var profile model.Profile
		if err := cursor.Decode(&profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
