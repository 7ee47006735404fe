// Package access defines the static role/permission matrix for the back
// office. There are exactly five roles; each maps to a fixed set of boolean
// capabilities. Unrecognized roles resolve to the least-privileged set.
package access

// Permission names a capability a role may hold.
type Permission string

const (
	PermDeleteClients      Permission = "delete_clients"
	PermViewFinances       Permission = "view_finances"
	PermViewAllSales       Permission = "view_all_sales"
	PermExportData         Permission = "export_data"
	PermManageUsers        Permission = "manage_users"
	PermManageDestinations Permission = "manage_destinations"
	PermManageItineraries  Permission = "manage_itineraries"
)

// Role is one of the five fixed role codes stored on a profile.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleAsesor       Role = "asesor"
	RoleSupervisor   Role = "supervisor"
	RoleContabilidad Role = "contabilidad"
	RoleOperaciones  Role = "operaciones"
)

// Labels maps role codes to their display names.
var Labels = map[Role]string{
	RoleAdmin:        "Administrador",
	RoleAsesor:       "Asesor de Ventas",
	RoleSupervisor:   "Supervisor",
	RoleContabilidad: "Contabilidad",
	RoleOperaciones:  "Operaciones",
}

// Label returns the display name for a role, or the raw code if unknown.
func Label(r Role) string {
	if l, ok := Labels[r]; ok {
		return l
	}
	return string(r)
}

// matrix is the static role→capability table.
var matrix = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermDeleteClients:      true,
		PermViewFinances:       true,
		PermViewAllSales:       true,
		PermExportData:         true,
		PermManageUsers:        true,
		PermManageDestinations: true,
		PermManageItineraries:  true,
	},
	RoleAsesor: {
		PermDeleteClients:      false,
		PermViewFinances:       false,
		PermViewAllSales:       false,
		PermExportData:         false,
		PermManageUsers:        false,
		PermManageDestinations: false,
		PermManageItineraries:  false,
	},
	RoleSupervisor: {
		PermDeleteClients:      true,
		PermViewFinances:       true,
		PermViewAllSales:       true,
		PermExportData:         true,
		PermManageUsers:        false,
		PermManageDestinations: true,
		PermManageItineraries:  true,
	},
	RoleContabilidad: {
		PermDeleteClients:      false,
		PermViewFinances:       true,
		PermViewAllSales:       true,
		PermExportData:         true,
		PermManageUsers:        false,
		PermManageDestinations: false,
		PermManageItineraries:  false,
	},
	RoleOperaciones: {
		PermDeleteClients:      false,
		PermViewFinances:       false,
		PermViewAllSales:       true,
		PermExportData:         false,
		PermManageUsers:        false,
		PermManageDestinations: true,
		PermManageItineraries:  true,
	},
}

// Permissions returns the capability set for a role. Unknown roles get the
// asesor (least-privileged) set.
func Permissions(r Role) map[Permission]bool {
	if set, ok := matrix[r]; ok {
		return set
	}
	return matrix[RoleAsesor]
}

// Can reports whether the role holds the given permission.
func Can(r Role, p Permission) bool {
	return Permissions(r)[p]
}

// Valid reports whether r is one of the five known role codes.
func Valid(r Role) bool {
	_, ok := matrix[r]
	return ok
}
