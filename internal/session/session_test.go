package session

import (
	"context"
	"errors"
	"testing"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/logger"
)

func seedProfile(gw *gateway.Fake, id uint, role string) {
	gw.Seed(gateway.TableProfiles, gateway.Row{
		"id":         id,
		"first_name": "Eva",
		"last_name":  "Ruiz",
		"email":      "eva@example.com",
		"role":       role,
		"active":     true,
	})
}

func TestLoadingStartsTrue(t *testing.T) {
	s := New(gateway.NewFake(), logger.NewNop())
	if !s.Loading() {
		t.Fatal("loading must start true so consumers do not redirect early")
	}
}

func TestHandleAuthChangeLogin(t *testing.T) {
	gw := gateway.NewFake()
	seedProfile(gw, 1, "supervisor")
	s := New(gw, logger.NewNop())

	s.HandleAuthChange(context.Background(), 1)

	if s.Loading() {
		t.Fatal("loading must clear after the determination")
	}
	u := s.Current()
	if u == nil || u.DisplayName != "Eva Ruiz" || u.Role != access.RoleSupervisor {
		t.Fatalf("unexpected session user: %+v", u)
	}
}

func TestHandleAuthChangeLogout(t *testing.T) {
	gw := gateway.NewFake()
	seedProfile(gw, 1, "admin")
	s := New(gw, logger.NewNop())
	s.HandleAuthChange(context.Background(), 1)

	s.HandleAuthChange(context.Background(), 0)

	if s.Current() != nil {
		t.Fatal("logout must clear the session user")
	}
	if s.Loading() {
		t.Fatal("loading must clear after logout too")
	}
}

func TestLogoutClearsCurrentUser(t *testing.T) {
	gw := gateway.NewFake()
	seedProfile(gw, 1, "admin")
	s := New(gw, logger.NewNop())
	s.HandleAuthChange(context.Background(), 1)
	if s.Current() == nil {
		t.Fatal("precondition: user must be set")
	}

	s.Logout()

	if s.Current() != nil {
		t.Fatal("Logout must clear the session user immediately")
	}
	if s.Can(access.PermViewAllSales) {
		t.Fatal("no permissions after Logout")
	}
}

func TestHandleAuthChangeProfileLookupFails(t *testing.T) {
	gw := gateway.NewFake()
	gw.FailNext("select", gateway.TableProfiles, errors.New("network down"))
	s := New(gw, logger.NewNop())

	s.HandleAuthChange(context.Background(), 1)

	if s.Current() != nil {
		t.Fatal("failed lookup must leave the user nil")
	}
	if s.Loading() {
		t.Fatal("loading must still clear when the lookup fails")
	}
}

func TestCanNoUser(t *testing.T) {
	s := New(gateway.NewFake(), logger.NewNop())
	for _, p := range []access.Permission{access.PermManageUsers, access.PermViewAllSales, access.PermDeleteClients} {
		if s.Can(p) {
			t.Fatalf("unauthenticated session must grant nothing, granted %q", p)
		}
	}
}

func TestCanUnknownRoleFallsBack(t *testing.T) {
	gw := gateway.NewFake()
	seedProfile(gw, 1, "gerente")
	s := New(gw, logger.NewNop())
	s.HandleAuthChange(context.Background(), 1)

	// An unrecognized role behaves exactly like asesor.
	for _, p := range []access.Permission{access.PermManageUsers, access.PermDeleteClients, access.PermViewAllSales, access.PermManageDestinations} {
		if s.Can(p) != access.Can(access.RoleAsesor, p) {
			t.Fatalf("unknown role must match the asesor set for %q", p)
		}
	}
}

func TestResolveCachesUntilInvalidate(t *testing.T) {
	gw := gateway.NewFake()
	seedProfile(gw, 1, "asesor")
	s := New(gw, logger.NewNop())

	u, err := s.Resolve(context.Background(), 1)
	if err != nil || u.Role != access.RoleAsesor {
		t.Fatalf("Resolve: %v %+v", err, u)
	}

	// Role changes remotely; the cached entry still answers.
	gw.Seed(gateway.TableProfiles, gateway.Row{"id": uint(1), "first_name": "Eva", "role": "admin", "active": true})
	u, err = s.Resolve(context.Background(), 1)
	if err != nil || u.Role != access.RoleAsesor {
		t.Fatalf("expected cached role, got %+v (%v)", u, err)
	}

	s.Invalidate(1)
	u, err = s.Resolve(context.Background(), 1)
	if err != nil || u.Role != access.RoleAdmin {
		t.Fatalf("expected fresh role after Invalidate, got %+v (%v)", u, err)
	}
}
