package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/store"
	"github.com/cpwcao/recipe-app-api/internal/utils"
	"github.com/cpwcao/recipe-app-api/models"
)

// minPasswordLength is the minimum accepted password length, counted in
// characters rather than bytes, for both registration and profile updates.
const minPasswordLength = 5

// authService is the concrete implementation of AuthService.
// It handles account registration, opaque bearer-token issuance and lookup,
// and profile management, using bcrypt for password hashing.
//
// Tokens are random keys stored server-side with a one-to-one binding to
// users; issuing a token twice returns the same key.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenRepository stores the opaque bearer keys.
	tokenRepository store.TokenRepository

	// uuidGenerator produces the random keys for newly issued tokens.
	uuidGenerator *utils.UUIDGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, tokenRepository store.TokenRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		uuidGenerator:   utils.NewUUIDGenerator(),
		logger:          logger,
	}
}

// Register creates a new active user account.
//
// It validates the email syntax and the minimum password length, hashes the
// password with bcrypt, and delegates persistence to the UserRepository.
//
// Returns the persisted user (with server-assigned UserID and DateJoined) or:
//   - ErrInvalidEmail when the email does not parse as an address.
//   - ErrPasswordTooShort when the password has fewer than 5 characters.
//   - store.ErrEmailAlreadyExists when the email is already registered.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateEmail(request.Email); err != nil {
		log.Error().Str("email", request.Email).Msg("invalid email provided on registration")
		return models.User{}, err
	}
	if utf8.RuneCountInString(request.Password) < minPasswordLength {
		return models.User{}, ErrPasswordTooShort
	}

	passwordHash, err := hashPassword(request.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("failed to hash password")
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Email:        request.Email,
		Name:         request.Name,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if !errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Err(err).Str("email", request.Email).Msg("user creation ended with error")
		}
		return models.User{}, err
	}

	return registeredUser, nil
}

// IssueToken verifies the credentials and returns the user's auth token,
// creating one when the user has none yet.
//
// Unknown email, wrong password and deactivated accounts all collapse into
// ErrWrongCredentials so that a caller cannot probe which emails exist.
func (a *authService) IssueToken(ctx context.Context, request models.TokenRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Token{}, ErrWrongCredentials
		}
		log.Err(err).Str("func", "*authService.IssueToken").Msg("user search by email failed")
		return models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return models.Token{}, ErrWrongCredentials
	}
	if !user.IsActive {
		return models.Token{}, ErrWrongCredentials
	}

	token, err := a.tokenRepository.GetOrCreateToken(ctx, user.UserID, a.uuidGenerator.Generate())
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("token issuance failed")
		return models.Token{}, fmt.Errorf("token issuance failed: %w", err)
	}

	return token, nil
}

// Authenticate resolves a bearer key to the owning user. An unknown key and
// a key bound to a deactivated account both fail.
func (a *authService) Authenticate(ctx context.Context, key string) (models.User, error) {
	log := logger.FromContext(ctx)

	if key == "" {
		return models.User{}, store.ErrTokenNotFound
	}

	userID, err := a.tokenRepository.FindUserIDByKey(ctx, key)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("token resolved to missing user")
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, store.ErrTokenNotFound
	}

	return user, nil
}

// Profile returns the account of the given user.
func (a *authService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return a.userRepository.FindUserByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of update to the account.
// A provided password is validated and re-hashed; the stored hash is never
// exposed through the returned user.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	patch := models.UserPatch{
		UserID:    userID,
		Email:     update.Email,
		Name:      update.Name,
		Username:  update.Username,
		FirstName: update.FirstName,
		LastName:  update.LastName,
	}

	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return models.User{}, err
		}
	}

	if update.Password != nil {
		if utf8.RuneCountInString(*update.Password) < minPasswordLength {
			return models.User{}, ErrPasswordTooShort
		}
		passwordHash, err := hashPassword(*update.Password)
		if err != nil {
			log.Err(err).Str("func", "*authService.UpdateProfile").Msg("failed to hash password")
			return models.User{}, fmt.Errorf("hashing password: %w", err)
		}
		patch.PasswordHash = &passwordHash
	}

	return a.userRepository.UpdateUser(ctx, patch)
}

// DeleteAccount removes the account; the schema cascades the deletion to the
// token and every owned recipe, tag and ingredient.
func (a *authService) DeleteAccount(ctx context.Context, userID int64) error {
	return a.userRepository.DeleteUser(ctx, userID)
}

// EnsureSuperuser creates an active staff superuser with the given
// credentials unless an account with that email already exists. Used for
// first-boot admin bootstrap.
func (a *authService) EnsureSuperuser(ctx context.Context, email, password string) error {
	log := logger.FromContext(ctx)

	if err := validateEmail(email); err != nil {
		return err
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	_, err = a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	})
	if err != nil {
		// lost a race with a concurrent bootstrap, the account exists
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return nil
		}
		log.Err(err).Str("email", email).Msg("superuser bootstrap failed")
		return err
	}

	log.Info().Str("email", email).Msg("superuser account created")
	return nil
}

func validateEmail(email string) error {
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
