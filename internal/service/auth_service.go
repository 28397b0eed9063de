package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightpath-edu/report-card-api/internal/dto"
)

// Credential is one stored login identity.
type Credential struct {
	Username     string
	PasswordHash string
	Role         string
}

// CredentialLookup resolves a username to its stored credential. The
// implementation and its lifecycle belong to the caller; the service holds
// no user state of its own.
type CredentialLookup interface {
	Lookup(ctx context.Context, username string) (Credential, bool, error)
}

// StaticCredentials is a CredentialLookup over a fixed set of users,
// suitable for wiring from configuration.
type StaticCredentials map[string]Credential

// Lookup implements CredentialLookup.
func (s StaticCredentials) Lookup(_ context.Context, username string) (Credential, bool, error) {
	credential, ok := s[username]
	return credential, ok, nil
}

// AuthService validates credentials and issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	credentials CredentialLookup
	secret      string
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

// NewAuthService constructs the auth service around an injected credential
// lookup.
func NewAuthService(credentials CredentialLookup, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}

	return &authService{
		credentials: credentials,
		secret:      secret,
		tokenTTL:    tokenTTL,
		logger:      logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)

	credential, found, err := s.credentials.Lookup(ctx, username)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if !found {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("username", username).Msg("failed login attempt")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":  credential.Username,
		"role": credential.Role,
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
