package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/model"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/repository"
	"github.com/vasapolrittideah/devconnector-api/shared/gravatar"
	"github.com/vasapolrittideah/devconnector-api/shared/metrics"
	"github.com/vasapolrittideah/devconnector-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	// Register creates an account and returns a bearer token for it.
	Register(ctx context.Context, params RegisterParams) (string, error)

	// Login verifies the credentials and returns a bearer token.
	Login(ctx context.Context, params LoginParams) (string, error)

	// GetCurrentUser returns the account the token was issued for.
	GetCurrentUser(ctx context.Context, userID string) (*model.User, error)

	// UserExists reports whether the account still exists.
	UserExists(ctx context.Context, userID string) (bool, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	IssueUserToken(userID string) (string, error)
}

// WelcomeMailer delivers the welcome email sent after registration.
// SendHTML is called on the request path, so it should queue rather than dial.
type WelcomeMailer interface {
	Enabled() bool
	SendHTML(to []string, subject, htmlBody string) error
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const welcomeSubject = "Welcome to DevConnector"

type authUsecase struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	tokens   TokenIssuer
	mailer   WelcomeMailer
	recorder metrics.AuthRecorder
	logger   *zerolog.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase. mailer may be nil.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	hasher security.PasswordHasher,
	tokens TokenIssuer,
	mailer WelcomeMailer,
	recorder metrics.AuthRecorder,
	logger *zerolog.Logger,
) AuthUsecase {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}

	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		recorder: recorder,
		logger:   logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (string, error) {
	token, err := u.register(ctx, params)
	u.record(metrics.EventRegister, err)

	return token, err
}

func (u *authUsecase) register(ctx context.Context, params RegisterParams) (string, error) {
	email := normalizeEmail(params.Email)

	// Check existing user
	_, err := u.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", ErrUserAlreadyExists
	case !errors.Is(err, mongo.ErrNoDocuments):
		return "", fmt.Errorf("get user by email: %w", err)
	}

	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       gravatar.URL(email, gravatar.DefaultOptions),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrUserAlreadyExists
		}

		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.tokens.IssueUserToken(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	u.sendWelcome(user)

	return token, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, error) {
	token, err := u.login(ctx, params)
	u.record(metrics.EventLogin, err)

	return token, err
}

func (u *authUsecase) login(ctx context.Context, params LoginParams) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidCredentials
		}

		return "", fmt.Errorf("get user by email: %w", err)
	}

	if !u.hasher.Verify(params.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.IssueUserToken(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func (u *authUsecase) UserExists(ctx context.Context, userID string) (bool, error) {
	_, err := u.GetCurrentUser(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (u *authUsecase) record(event string, err error) {
	switch {
	case err == nil:
		u.recorder.RecordAuthEvent(event, metrics.OutcomeSuccess)
	case errors.Is(err, ErrUserAlreadyExists), errors.Is(err, ErrInvalidCredentials):
		u.recorder.RecordAuthEvent(event, metrics.OutcomeRejected)
	default:
		u.recorder.RecordAuthEvent(event, metrics.OutcomeError)
	}
}

// sendWelcome hands the welcome email to the mailer. Failures are only logged.
func (u *authUsecase) sendWelcome(user *model.User) {
	if u.mailer == nil || !u.mailer.Enabled() {
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your DevConnector account is ready. Create your profile to get started.</p>",
		html.EscapeString(user.Name),
	)

	if err := u.mailer.SendHTML([]string{user.Email}, welcomeSubject, body); err != nil {
		u.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send welcome email")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
