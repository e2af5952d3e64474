package domain

import "errors"

var (
	ErrMenuNotFound    = errors.New("menu not found")
	ErrSubmenuNotFound = errors.New("submenu not found")
)

// Submenu is a nested navigation entry owned by exactly one Menu.
type Submenu struct {
	ID     int    `json:"id" bson:"_id"`
	MenuID int    `json:"menuId" bson:"menu_id"`
	Name   string `json:"name" bson:"name"`
	Path   string `json:"path" bson:"path"`
	Icon   string `json:"icon,omitempty" bson:"icon,omitempty"`
}

func (s Submenu) EntityID() int { return s.ID }

// Menu is a navigation entry. RoleIDs lists the roles the server exposes the
// menu to; the role-scoped endpoint is the source of truth for visibility.
type Menu struct {
	ID       int       `json:"id" bson:"_id"`
	Name     string    `json:"name" bson:"name"`
	Path     string    `json:"path" bson:"path"`
	Icon     string    `json:"icon" bson:"icon"`
	RoleIDs  []int     `json:"roleIds,omitempty" bson:"role_ids"`
	Submenus []Submenu `json:"submenus,omitempty" bson:"submenus"`
}

func (m Menu) EntityID() int { return m.ID }

// VisibleTo reports whether the menu is exposed to the given role.
func (m Menu) VisibleTo(roleID int) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}
