package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/realtime"
)

// MenuService owns menu and submenu CRUD. Submenu operations are routed
// through the owning menu document; events for submenus carry the parent
// menu id so subscribed views can merge them into the right sub-collection.
type MenuService struct {
	repo   ports.MenuRepository
	hub    *realtime.Hub
	logger zerolog.Logger
}

func NewMenuService(repo ports.MenuRepository, hub *realtime.Hub, logger zerolog.Logger) *MenuService {
	return &MenuService{repo: repo, hub: hub, logger: logger}
}

func (s *MenuService) List(ctx context.Context) ([]domain.Menu, error) {
	return s.repo.List(ctx)
}

// Visible returns the menus the given role may see. The repository query
// is the source of truth; nothing is re-filtered here.
func (s *MenuService) Visible(ctx context.Context, roleID int) ([]domain.Menu, error) {
	return s.repo.ListByRole(ctx, roleID)
}

func (s *MenuService) Create(ctx context.Context, in ports.MenuInput) (*domain.Menu, error) {
	menu := &domain.Menu{
		Name:    in.Name,
		Path:    in.Path,
		Icon:    in.Icon,
		RoleIDs: in.RoleIDs,
	}
	if err := s.repo.Create(ctx, menu); err != nil {
		return nil, err
	}

	s.logger.Info().Int("menu_id", menu.ID).Str("path", menu.Path).Msg("menu created")
	s.hub.Publish(realtime.Event{Name: realtime.EventMenuCreated, Payload: *menu})
	return menu, nil
}

func (s *MenuService) Update(ctx context.Context, id int, in ports.MenuInput) (*domain.Menu, error) {
	menu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	menu.Name = in.Name
	menu.Path = in.Path
	menu.Icon = in.Icon
	if in.RoleIDs != nil {
		menu.RoleIDs = in.RoleIDs
	}
	if err := s.repo.Update(ctx, menu); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{Name: realtime.EventMenuUpdated, Payload: *menu})
	return menu, nil
}

func (s *MenuService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(realtime.Event{Name: realtime.EventMenuDeleted, Payload: id})
	return nil
}

func (s *MenuService) AddSubmenu(ctx context.Context, menuID int, in ports.SubmenuInput) (*domain.Submenu, error) {
	menu, err := s.repo.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.NextSubmenuID(ctx)
	if err != nil {
		return nil, err
	}

	sub := domain.Submenu{ID: id, MenuID: menu.ID, Name: in.Name, Path: in.Path, Icon: in.Icon}
	menu.Submenus = append(menu.Submenus, sub)
	if err := s.repo.Update(ctx, menu); err != nil {
		return nil, err
	}

	// The full parent is pushed as well so list views without submenu
	// handlers still converge.
	s.hub.Publish(realtime.Event{Name: realtime.EventSubmenuUpdated, Payload: sub})
	s.hub.Publish(realtime.Event{Name: realtime.EventMenuUpdated, Payload: *menu})
	return &sub, nil
}

func (s *MenuService) UpdateSubmenu(ctx context.Context, submenuID int, in ports.SubmenuInput) (*domain.Submenu, error) {
	menu, err := s.repo.FindBySubmenu(ctx, submenuID)
	if err != nil {
		return nil, err
	}

	var updated *domain.Submenu
	for i := range menu.Submenus {
		if menu.Submenus[i].ID == submenuID {
			menu.Submenus[i].Name = in.Name
			menu.Submenus[i].Path = in.Path
			menu.Submenus[i].Icon = in.Icon
			updated = &menu.Submenus[i]
			break
		}
	}
	if updated == nil {
		return nil, domain.ErrSubmenuNotFound
	}

	if err := s.repo.Update(ctx, menu); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{Name: realtime.EventSubmenuUpdated, Payload: *updated})
	return updated, nil
}

func (s *MenuService) DeleteSubmenu(ctx context.Context, submenuID int) error {
	menu, err := s.repo.FindBySubmenu(ctx, submenuID)
	if err != nil {
		return err
	}

	kept := menu.Submenus[:0:0]
	for _, sub := range menu.Submenus {
		if sub.ID != submenuID {
			kept = append(kept, sub)
		}
	}
	menu.Submenus = kept

	if err := s.repo.Update(ctx, menu); err != nil {
		return err
	}

	s.hub.Publish(realtime.Event{Name: realtime.EventSubmenuDeleted, Payload: submenuID})
	return nil
}
