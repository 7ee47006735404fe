// Package auth implements the authentication surface: HMAC-signed cookie
// sessions, request-context identity, and password sign-in against the
// auth_users table. State-change listeners let the session store react to
// login and logout the way it would to a hosted auth provider.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

type ctxKey string

const (
	sessionCookieName = "session"
	userIDCtxKey      = ctxKey("userID")
)

// ErrInvalidCredentials is returned by SignIn for a bad email or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Secret returns SESSION_SECRET or a default dev value.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

// CreateSession sets a signed cookie with the user id.
func CreateSession(w http.ResponseWriter, userID uint) {
	uidStr := strconv.FormatUint(uint64(userID), 10)
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(uidStr))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uidStr + "." + sig,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie and returns the user id.
func ParseSession(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return 0, false
	}
	uidStr, sig := parts[0], parts[1]
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(uidStr))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return 0, false
	}
	id64, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}

// WithUserID stores the user id in the context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext extracts the user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	v := ctx.Value(userIDCtxKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Middleware attaches the user id to the request context if present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := ParseSession(r); ok {
			r = r.WithContext(WithUserID(r.Context(), uid))
		}
		next.ServeHTTP(w, r)
	})
}

// StateListener is notified after a sign-in (userID > 0) or sign-out
// (userID == 0).
type StateListener func(ctx context.Context, userID uint)

// Service verifies credentials against the auth_users table and fans out
// auth-state changes.
type Service struct {
	gw        gateway.Client
	listeners []StateListener
}

// NewService creates an auth service over the gateway.
func NewService(gw gateway.Client) *Service {
	return &Service{gw: gw}
}

// OnStateChange registers a listener for login/logout events.
func (s *Service) OnStateChange(fn StateListener) {
	s.listeners = append(s.listeners, fn)
}

func (s *Service) notifyState(ctx context.Context, userID uint) {
	for _, fn := range s.listeners {
		fn(ctx, userID)
	}
}

// SignIn checks email/password and returns the authenticated user id.
func (s *Service) SignIn(ctx context.Context, email, password string) (uint, error) {
	rows, err := s.gw.Select(ctx, gateway.TableAuthUsers, gateway.Filter{"email": strings.ToLower(strings.TrimSpace(email))}, "")
	if err != nil {
		return 0, fmt.Errorf("auth lookup: %w", err)
	}
	if len(rows) == 0 {
		return 0, ErrInvalidCredentials
	}
	hash := gateway.Str(rows[0], "password_hash")
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return 0, ErrInvalidCredentials
	}
	uid := gateway.Uint(rows[0], "id")
	s.notifyState(ctx, uid)
	return uid, nil
}

// SignOut invalidates the session server-side and notifies listeners.
func (s *Service) SignOut(ctx context.Context) {
	s.notifyState(ctx, 0)
}

// CreateUser provisions an account: the credential row first, then the
// profile keyed to the same id. This is the privileged path the domain
// store's user management goes through.
func (s *Service) CreateUser(ctx context.Context, email, password, firstName, lastName string, role access.Role) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	users, err := s.gw.Insert(ctx, gateway.TableAuthUsers, []gateway.Row{{
		"email":         email,
		"password_hash": hash,
	}})
	if err != nil {
		return nil, fmt.Errorf("create auth user: %w", err)
	}
	uid := gateway.Uint(users[0], "id")
	profiles, err := s.gw.Insert(ctx, gateway.TableProfiles, []gateway.Row{{
		"id":         uid,
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"role":       string(role),
		"active":     true,
	}})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	r := profiles[0]
	return &models.Profile{
		ID:        gateway.Uint(r, "id"),
		FirstName: gateway.Str(r, "first_name"),
		LastName:  gateway.Str(r, "last_name"),
		Email:     gateway.Str(r, "email"),
		Role:      role,
		RoleLabel: access.Label(role),
		Active:    gateway.Bool(r, "active"),
		CreatedAt: gateway.Time(r, "created_at"),
	}, nil
}

// HashPassword hashes a password for storage.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
