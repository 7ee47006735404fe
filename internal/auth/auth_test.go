package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/gateway"
)

func TestSessionCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 42)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	uid, ok := ParseSession(req)
	if !ok || uid != 42 {
		t.Fatalf("ParseSession = %d, %v", uid, ok)
	}
}

func TestParseSessionRejectsTampering(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 42)
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "99." + cookie.Value[len("42."):]})
	if _, ok := ParseSession(req); ok {
		t.Fatal("tampered cookie must not parse")
	}
}

func TestSignIn(t *testing.T) {
	gw := gateway.NewFake()
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	gw.Seed(gateway.TableAuthUsers, gateway.Row{"id": uint(1), "email": "eva@example.com", "password_hash": hash})
	svc := NewService(gw)

	var notified uint
	svc.OnStateChange(func(_ context.Context, uid uint) { notified = uid })

	uid, err := svc.SignIn(context.Background(), "  EVA@example.com ", "secret")
	if err != nil || uid != 1 {
		t.Fatalf("SignIn = %d, %v", uid, err)
	}
	if notified != 1 {
		t.Fatalf("state listener not notified, got %d", notified)
	}

	if _, err := svc.SignIn(context.Background(), "eva@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should fail with ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "nobody@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should fail with ErrInvalidCredentials, got %v", err)
	}
}

func TestSignOutNotifiesZero(t *testing.T) {
	svc := NewService(gateway.NewFake())
	notified := uint(99)
	svc.OnStateChange(func(_ context.Context, uid uint) { notified = uid })
	svc.SignOut(context.Background())
	if notified != 0 {
		t.Fatalf("sign-out should notify with 0, got %d", notified)
	}
}

func TestCreateUser(t *testing.T) {
	gw := gateway.NewFake()
	svc := NewService(gw)

	p, err := svc.CreateUser(context.Background(), "Eva@Example.com", "secret", "Eva", "Ruiz", access.RoleSupervisor)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if p.Email != "eva@example.com" || p.Role != access.RoleSupervisor || !p.Active {
		t.Fatalf("unexpected profile: %+v", p)
	}

	users := gw.Rows(gateway.TableAuthUsers)
	profiles := gw.Rows(gateway.TableProfiles)
	if len(users) != 1 || len(profiles) != 1 {
		t.Fatalf("expected credential and profile rows, got %d/%d", len(users), len(profiles))
	}
	if gateway.Uint(profiles[0], "id") != gateway.Uint(users[0], "id") {
		t.Fatal("profile must be keyed to the auth user id")
	}

	// The new account can sign in.
	if uid, err := svc.SignIn(context.Background(), "eva@example.com", "secret"); err != nil || uid != p.ID {
		t.Fatalf("SignIn after CreateUser = %d, %v", uid, err)
	}
}
