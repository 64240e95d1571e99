package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// tokenTTL is the lifetime of an issued access token.
const tokenTTL = time.Hour

// Credential errors shown to the user as-is.
var (
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordRequired = errors.New("password is required")
	ErrBadCredentials   = errors.New("invalid email or password")
)

// Service implements account creation, credential checks, and access
// tokens. It is stateless; Session layers the current-user context on top.
type Service struct {
	repo   *Repository
	secret []byte
}

// NewService creates a Service signing tokens with the given secret.
func NewService(repo *Repository, secret []byte) *Service {
	return &Service{repo: repo, secret: secret}
}

// SignUp validates the submitted fields, stores the account with a bcrypt
// password hash, and returns the new user.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !emailRegexp.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, u, string(hash)); err != nil {
		return nil, err
	}
	return &u, nil
}

// SignIn checks credentials and returns the matching user. Misses and
// password mismatches share one error so the response doesn't leak which
// emails exist.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" {
		return nil, ErrEmailRequired
	}
	if !emailRegexp.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	u, hash, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// IssueToken creates a short-lived HS256 access token for the user.
func (s *Service) IssueToken(u *User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID,
		"name":  u.Name,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}

// ParseToken validates an access token and resolves its user against the
// store, so a deleted account stops authenticating immediately.
func (s *Service) ParseToken(ctx context.Context, tokenString string) (*User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	u, err := s.repo.GetByID(ctx, sub)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("unknown user %s", sub)
	}
	return u, nil
}
