package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[bson.ObjectID]*model.User
	err       error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[bson.ObjectID]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
		}
	}

	user.ID = bson.NewObjectID()
	stored := *user
	f.users[user.ID] = &stored

	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	u, ok := f.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	delete(f.users, objectID)

	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*model.Profile{}}
}

func (f *fakeProfileRepo) GetProfileByUserID(_ context.Context, userID string) (*model.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := bson.ObjectIDFromHex(userID); err != nil {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidID, userID)
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return p, nil
}

func (f *fakeProfileRepo) ListProfiles(context.Context) ([]*model.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*model.Profile{}
	for _, p := range f.profiles {
		out = append(out, p)
	}

	return out, nil
}

func (f *fakeProfileRepo) UpsertProfile(
	_ context.Context,
	userID string,
	params repository.UpsertProfileParams,
) (*model.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		objectID, _ := bson.ObjectIDFromHex(userID)
		p = &model.Profile{ID: bson.NewObjectID(), UserID: objectID, Experience: []model.Experience{}, Education: []model.Education{}}
		f.profiles[userID] = p
	}
	if params.Company != "" {
		p.Company = params.Company
	}
	p.Status = params.Status
	p.Skills = params.Skills
	p.Social = params.Social

	return p, nil
}

func (f *fakeProfileRepo) DeleteProfileByUserID(_ context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.profiles, userID)

	return nil
}

func (f *fakeProfileRepo) AddExperience(_ context.Context, userID string, e model.Experience) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	e.ID = bson.NewObjectID()
	p.Experience = append([]model.Experience{e}, p.Experience...)

	return p, nil
}

func (f *fakeProfileRepo) RemoveExperience(_ context.Context, userID, id string) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for i, e := range p.Experience {
		if e.ID.Hex() == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return p, nil
		}
	}

	return nil, repository.ErrEntryNotFound
}

func (f *fakeProfileRepo) AddEducation(_ context.Context, userID string, e model.Education) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	e.ID = bson.NewObjectID()
	p.Education = append([]model.Education{e}, p.Education...)

	return p, nil
}

func (f *fakeProfileRepo) RemoveEducation(_ context.Context, userID, id string) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for i, e := range p.Education {
		if e.ID.Hex() == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return p, nil
		}
	}

	return nil, repository.ErrEntryNotFound
}

type fakeTokens struct {
	err error
}

func (f *fakeTokens) IssueUserToken(userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	return "token-" + userID, nil
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	enabled bool
	sent    chan sentMail
	err     error
}

func newFakeMailer(enabled bool) *fakeMailer {
	return &fakeMailer{enabled: enabled, sent: make(chan sentMail, 4)}
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	f.sent <- sentMail{to: to, subject: subject, body: htmlBody}
	return f.err
}

type recordedEvent struct {
	event   string
	outcome string
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeRecorder) RecordAuthEvent(event, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{event: event, outcome: outcome})
}
