package entity

import "time"

// Module identifica un área funcional que agrupa páginas de la UI y rutas de la API.
type Module string

// Módulos conocidos. Cualquier otro valor se rechaza en el registro de roles.
const (
	ModuleDashboard Module = "dashboard"
	ModuleCustomers Module = "customers"
	ModuleOrders    Module = "orders"
	ModulePayments  Module = "payments"
	ModuleInventory Module = "inventory"
	ModuleReports   Module = "reports"
	ModuleUsers     Module = "users"
	ModuleRoles     Module = "roles"
)

// AllModules en el orden en que se presentan en la navegación.
var AllModules = []Module{
	ModuleDashboard, ModuleCustomers, ModuleOrders, ModulePayments,
	ModuleInventory, ModuleReports, ModuleUsers, ModuleRoles,
}

// Valid informa si el módulo es uno de los conocidos.
func (m Module) Valid() bool {
	for _, k := range AllModules {
		if k == m {
			return true
		}
	}
	return false
}

// OwnerReserved informa si el módulo solo es accesible por el owner (no se puede otorgar a roles propios).
func (m Module) OwnerReserved() bool {
	return m == ModuleUsers || m == ModuleRoles
}

// Verb es una acción de permiso.
type Verb string

const (
	VerbRead   Verb = "read"
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
	VerbAll    Verb = "all"
)

// AllVerbs incluye el comodín "all".
var AllVerbs = []Verb{VerbRead, VerbCreate, VerbUpdate, VerbDelete, VerbAll}

// Valid informa si el verbo es uno de los conocidos.
func (v Verb) Valid() bool {
	for _, k := range AllVerbs {
		if k == v {
			return true
		}
	}
	return false
}

// ModuleSet conjunto de módulos.
type ModuleSet map[Module]struct{}

// NewModuleSet construye el conjunto a partir de una lista (duplicados se ignoran).
func NewModuleSet(mods ...Module) ModuleSet {
	s := make(ModuleSet, len(mods))
	for _, m := range mods {
		s[m] = struct{}{}
	}
	return s
}

// Has informa si m pertenece al conjunto.
func (s ModuleSet) Has(m Module) bool {
	_, ok := s[m]
	return ok
}

// Slice devuelve los módulos ordenados según AllModules.
func (s ModuleSet) Slice() []Module {
	out := make([]Module, 0, len(s))
	for _, m := range AllModules {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// Strings igual que Slice pero como []string (persistencia).
func (s ModuleSet) Strings() []string {
	mods := s.Slice()
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = string(m)
	}
	return out
}

// VerbSet conjunto de verbos.
type VerbSet map[Verb]struct{}

// NewVerbSet construye el conjunto a partir de una lista.
func NewVerbSet(verbs ...Verb) VerbSet {
	s := make(VerbSet, len(verbs))
	for _, v := range verbs {
		s[v] = struct{}{}
	}
	return s
}

// Has informa si v pertenece al conjunto.
func (s VerbSet) Has(v Verb) bool {
	_, ok := s[v]
	return ok
}

// Strings devuelve los verbos en el orden de AllVerbs.
func (s VerbSet) Strings() []string {
	out := make([]string, 0, len(s))
	for _, v := range AllVerbs {
		if s.Has(v) {
			out = append(out, string(v))
		}
	}
	return out
}

// RoleOwner nombre del rol integrado con acceso total.
const RoleOwner = "owner"

// RoleStaff nombre del rol por defecto para altas sin rol explícito.
const RoleStaff = "staff"

// Role agrupa módulos accesibles y verbos permitidos. Name es la clave de máquina
// (lower_snake, única, inmutable); DisplayName es editable.
type Role struct {
	ID          string
	Name        string
	DisplayName string
	Description string
	Modules     ModuleSet
	Permissions VerbSet
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwner informa si es el rol integrado owner.
func (r *Role) IsOwner() bool {
	return r != nil && r.Name == RoleOwner
}
