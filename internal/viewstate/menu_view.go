package viewstate

import (
	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/realtime"
)

// MenuView reconciles the menu list, including the nested submenu
// collections. Submenu events are routed into the owning menu by
// Submenu.MenuID and never create a top-level entry.
type MenuView struct {
	*View[domain.Menu]
}

// NewMenuView seeds a menu view and wires the five menu event kinds.
func NewMenuView(initial []domain.Menu) *MenuView {
	v := NewView(initial)
	v.OnCreated(realtime.EventMenuCreated)
	v.OnUpdated(realtime.EventMenuUpdated)
	v.OnDeleted(realtime.EventMenuDeleted)
	v.On(realtime.EventSubmenuUpdated, applySubmenuUpdate)
	v.On(realtime.EventSubmenuDeleted, applySubmenuDelete)
	return &MenuView{View: v}
}

// applySubmenuUpdate replaces the submenu inside its owning menu, appending
// it when unseen. Events whose owning menu is not held are dropped.
func applySubmenuUpdate(c *Collection[domain.Menu], evt realtime.Event) {
	sub, ok := evt.Payload.(domain.Submenu)
	if !ok {
		return
	}

	menu, ok := c.Get(sub.MenuID)
	if !ok {
		return
	}

	replaced := false
	for i, s := range menu.Submenus {
		if s.ID == sub.ID {
			menu.Submenus[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		menu.Submenus = append(menu.Submenus, sub)
	}
	c.ApplyUpdate(menu)
}

// applySubmenuDelete removes the submenu id from every held menu. The event
// carries only the id, so ownership cannot be narrowed further.
func applySubmenuDelete(c *Collection[domain.Menu], evt realtime.Event) {
	id, ok := EventID(evt.Payload)
	if !ok {
		return
	}

	for _, menu := range c.Snapshot() {
		kept := menu.Submenus[:0:0]
		for _, s := range menu.Submenus {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		if len(kept) != len(menu.Submenus) {
			menu.Submenus = kept
			c.ApplyUpdate(menu)
		}
	}
}
