// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It holds no mutable state
// across requests; uniqueness under concurrency is delegated to the store's
// constraints.
type authService struct {
	txManager      repository.TransactionManager
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	issuer         service.TokenIssuer
	validate       *validator.Validate
	minPasswordLen int
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for the auth service, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	Issuer         service.TokenIssuer
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	minPasswordLen := config.DefaultMinPasswordLength
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLen = params.Config.Auth.MinPasswordLength
	}

	return &authService{
		txManager:      params.TxManager,
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		issuer:         params.Issuer,
		validate:       validator.New(),
		minPasswordLen: minPasswordLen,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise the service's own.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new user: shape checks, duplicate pre-check, hash,
// atomic insert. The insert's unique constraints are the authority for
// uniqueness; the pre-check only produces a friendlier early failure.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("username", input.Username), slog.String("email", input.Email))

	if err := srv.validateSignupInput(input); err != nil {
		srv.log(ctx).Warn("Signup input validation failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	var createdUser *entity.User
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		credentialRepo := repos.CredentialRepo()

		_, err := credentialRepo.FindByUsernameOrEmail(ctx, input.Username, input.Email)
		if err == nil {
			return domainerrors.ErrDuplicateCredential.WrapMessage("username or email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing credentials")
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during signup")
		}

		newUser := &entity.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hashedPassword,
		}

		// A concurrent signup that raced past the pre-check fails here with
		// ErrDuplicateCredential from the store's unique constraints.
		if err := credentialRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during signup")
		}

		createdUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", createdUser.ID))

	return &usecase.SignupOutput{User: createdUser}, nil
}

// Login verifies credentials and issues a bearer token. Unknown username and
// wrong password are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.credentialRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// Check the password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.issuer.Issue(user.Username, srv.issuer.Lifetime())
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue token during login")
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: token,
		TokenType:   usecase.TokenTypeBearer,
	}, nil
}

// validateSignupInput enforces the configured shape constraints. The minimum
// password length comes from configuration, not code.
func (srv *authService) validateSignupInput(input *usecase.SignupInput) error {
	if err := srv.validate.Var(input.Username, "required,max=100"); err != nil {
		return domainerrors.ErrInvalidInput.WrapMessage("username must not be empty")
	}
	if err := srv.validate.Var(input.Email, "required,email"); err != nil {
		return domainerrors.ErrInvalidInput.WrapMessage("email must be a valid address")
	}
	if len(input.Password) < srv.minPasswordLen {
		return domainerrors.ErrInvalidInput.WrapMessage("password is shorter than the configured minimum")
	}

	return nil
}
