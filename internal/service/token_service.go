package service

import (
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenIssuer = "exercise-tracker"

// TokenService issues bearer tokens that let a user write to their own log.
type TokenService interface {
	Enabled() bool
	IssueToken(ctx context.Context, userID string) (string, error)
}

type tokenService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewTokenService creates a token service. An empty secret disables it.
func NewTokenService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) TokenService {
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &tokenService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}
}

func (s *tokenService) Enabled() bool {
	return s.jwtSecret != ""
}

// TokenClaims is the JWT payload. UserID is the only authorization input.
type TokenClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for an existing user.
func (s *tokenService) IssueToken(ctx context.Context, userID string) (string, error) {
	if !s.Enabled() {
		return "", ErrTokensDisabled
	}
	user, err := findUser(ctx, s.userRepo, userID)
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := &TokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", ErrTokenGeneration
	}
	return signed, nil
}
