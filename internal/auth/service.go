package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	redisclient "github.com/clinicdesk/clinic-backend/internal/redis"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims is the access-token payload: registered claims plus the account
// email. Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	store      Store
	limiter    redisclient.AttemptLimiter
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService wires the user store, the failed-login limiter (nil disables
// throttling) and the token parameters.
func NewService(store Store, limiter redisclient.AttemptLimiter, secret string, tokenTTL time.Duration, bcryptCost int) *Service {
	return &Service{
		store:      store,
		limiter:    limiter,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a user with a hashed password. The returned User never
// exposes the hash through its JSON form.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	return s.store.CreateUser(ctx, email, hash)
}

// Login verifies credentials and returns a signed access token. Failed
// attempts count against the limiter; a success resets the counter.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if s.limiter != nil {
		blocked, err := s.limiter.TooManyFailures(ctx, email)
		if err != nil {
			return "", fmt.Errorf("check login attempts: %w", err)
		}
		if blocked {
			return "", ErrTooManyAttempts
		}
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("load user: %w", err)
	}

	if user == nil || !VerifyPassword(user.PasswordHash, password) {
		if s.limiter != nil {
			if lerr := s.limiter.RecordFailure(ctx, email); lerr != nil {
				return "", fmt.Errorf("record failed login: %w", lerr)
			}
		}
		return "", ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			return "", fmt.Errorf("reset login attempts: %w", err)
		}
	}

	return s.IssueToken(user)
}

// IssueToken signs an HS256 token for the user.
func (s *Service) IssueToken(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token string.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// EnsureUser registers the account if it does not exist yet. Used by
// seeding so a demo login is always present.
func (s *Service) EnsureUser(ctx context.Context, email, password string) error {
	_, err := s.Register(ctx, email, password)
	if errors.Is(err, ErrEmailTaken) {
		return nil
	}
	return err
}
