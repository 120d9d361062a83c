// Package access contiene la función de decisión del control de acceso.
//
// Es la única regla de autorización del sistema: la usan tanto el middleware HTTP
// (403 en la API) como el endpoint de navegación que la UI consulta para mostrar u ocultar
// páginas. Ninguna otra capa compara nombres de rol.
package access

import "github.com/jhoicas/boutique-api/internal/domain/entity"

// Policy describe lo que un rol permite. Solo hay dos variantes: OwnerPolicy y CustomPolicy.
type Policy interface {
	allows(m entity.Module, v entity.Verb) bool
}

// OwnerPolicy acceso total, independiente de los módulos/verbos almacenados.
type OwnerPolicy struct{}

func (OwnerPolicy) allows(entity.Module, entity.Verb) bool { return true }

// CustomPolicy acceso según los conjuntos guardados en el rol.
type CustomPolicy struct {
	Modules entity.ModuleSet
	Verbs   entity.VerbSet
}

func (p CustomPolicy) allows(m entity.Module, v entity.Verb) bool {
	if !p.Modules.Has(m) {
		return false
	}
	return p.Verbs.Has(v) || p.Verbs.Has(entity.VerbAll)
}

// PolicyFor construye la política de un rol. Un rol nil no concede nada.
func PolicyFor(role *entity.Role) Policy {
	if role == nil {
		return CustomPolicy{}
	}
	if role.IsOwner() {
		return OwnerPolicy{}
	}
	return CustomPolicy{Modules: role.Modules, Verbs: role.Permissions}
}

// Principal identidad del llamador en el alcance de una petición.
type Principal struct {
	UserID   string
	Email    string
	RoleName string
	Active   bool
	Policy   Policy
}

// NewPrincipal arma el principal a partir del usuario y su rol.
func NewPrincipal(user *entity.User, role *entity.Role) *Principal {
	p := &Principal{Policy: PolicyFor(role)}
	if user != nil {
		p.UserID = user.ID
		p.Email = user.Email
		p.Active = user.IsActive()
	}
	if role != nil {
		p.RoleName = role.Name
	}
	return p
}

// IsOwner informa si el principal tiene la política de owner.
func (p *Principal) IsOwner() bool {
	if p == nil {
		return false
	}
	_, ok := p.Policy.(OwnerPolicy)
	return ok
}

// CanAccess decide si el principal puede ejecutar verb sobre module.
// Un usuario inactivo nunca pasa; el estado se revisa antes que el rol.
func CanAccess(p *Principal, module entity.Module, verb entity.Verb) bool {
	if p == nil || !p.Active || p.Policy == nil {
		return false
	}
	return p.Policy.allows(module, verb)
}

// Grants devuelve, por módulo, los verbos concretos que el principal puede ejecutar.
// Lo consume la UI para construir la navegación; usa CanAccess para no divergir de la API.
func Grants(p *Principal) map[entity.Module][]entity.Verb {
	out := make(map[entity.Module][]entity.Verb)
	for _, m := range entity.AllModules {
		var verbs []entity.Verb
		for _, v := range []entity.Verb{entity.VerbRead, entity.VerbCreate, entity.VerbUpdate, entity.VerbDelete} {
			if CanAccess(p, m, v) {
				verbs = append(verbs, v)
			}
		}
		if len(verbs) > 0 {
			out[m] = verbs
		}
	}
	return out
}
