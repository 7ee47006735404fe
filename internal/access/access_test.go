package access

import "testing"

func TestAdminHoldsEverything(t *testing.T) {
	for p := range matrix[RoleAdmin] {
		if !Can(RoleAdmin, p) {
			t.Errorf("admin should hold %q", p)
		}
	}
}

func TestAsesorHoldsNothing(t *testing.T) {
	for p := range matrix[RoleAsesor] {
		if Can(RoleAsesor, p) {
			t.Errorf("asesor should not hold %q", p)
		}
	}
}

func TestMatrixSpotChecks(t *testing.T) {
	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleSupervisor, PermManageUsers, false},
		{RoleSupervisor, PermDeleteClients, true},
		{RoleContabilidad, PermViewFinances, true},
		{RoleContabilidad, PermManageDestinations, false},
		{RoleOperaciones, PermManageItineraries, true},
		{RoleOperaciones, PermViewFinances, false},
	}
	for _, c := range cases {
		if got := Can(c.role, c.perm); got != c.want {
			t.Errorf("Can(%q, %q) = %v, want %v", c.role, c.perm, got, c.want)
		}
	}
}

func TestUnknownRoleFallsBackToAsesor(t *testing.T) {
	for p := range matrix[RoleAdmin] {
		if Can(Role("gerente"), p) != Can(RoleAsesor, p) {
			t.Errorf("unknown role must mirror asesor for %q", p)
		}
	}
	if Valid(Role("gerente")) {
		t.Error("unknown role must not validate")
	}
}

func TestLabelFallsBackToCode(t *testing.T) {
	if Label(RoleAdmin) != "Administrador" {
		t.Errorf("Label(admin) = %q", Label(RoleAdmin))
	}
	if Label(Role("gerente")) != "gerente" {
		t.Errorf("unknown role label should echo the code, got %q", Label(Role("gerente")))
	}
}
