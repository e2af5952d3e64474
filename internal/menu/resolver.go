// Package menu derives which navigation entries a role may see and keeps
// the derivation live while menus are edited elsewhere.
package menu

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/api/metrics"
	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/realtime"
)

// Cache is the freshness-window cache the resolver reads through,
// implemented by the redis menu cache.
type Cache interface {
	Get(ctx context.Context, roleID int) ([]domain.Menu, bool, error)
	Set(ctx context.Context, roleID int, menus []domain.Menu) error
	Invalidate(ctx context.Context, roleID int) error
}

// Resolver answers "which menus does role N see" from, in order: the TTL
// cache, the repository, and a last-known-good copy when the fetch fails.
// Push events patch resolved sets, so a rename or an icon change lands
// without a refetch.
type Resolver struct {
	repo   ports.MenuRepository
	cache  Cache
	logger zerolog.Logger

	mu       sync.Mutex
	lastGood map[int][]domain.Menu
	sub      *realtime.Subscription
}

func NewResolver(repo ports.MenuRepository, cache Cache, logger zerolog.Logger) *Resolver {
	return &Resolver{
		repo:     repo,
		cache:    cache,
		logger:   logger,
		lastGood: make(map[int][]domain.Menu),
	}
}

// Visible resolves the role's menu set. The repository's role-scoped query
// is the source of truth; nothing is re-filtered here. On a fetch failure
// the previous result is returned stale rather than failing the caller.
func (r *Resolver) Visible(ctx context.Context, roleID int) ([]domain.Menu, error) {
	if menus, ok, err := r.cache.Get(ctx, roleID); err == nil && ok {
		metrics.MenuCacheTotal.WithLabelValues("hit").Inc()
		return menus, nil
	} else if err != nil {
		r.logger.Warn().Err(err).Int("role_id", roleID).Msg("menu cache unavailable")
	}
	metrics.MenuCacheTotal.WithLabelValues("miss").Inc()

	menus, err := r.repo.ListByRole(ctx, roleID)
	if err != nil {
		r.mu.Lock()
		stale, ok := r.lastGood[roleID]
		r.mu.Unlock()
		if ok {
			r.logger.Warn().Err(err).Int("role_id", roleID).Msg("menu fetch failed, serving stale set")
			return stale, nil
		}
		return nil, err
	}

	r.remember(ctx, roleID, menus)
	return menus, nil
}

// VisiblePaths flattens the role's menu set into the path list the route
// guard matches against, submenu paths included.
func (r *Resolver) VisiblePaths(ctx context.Context, roleID int) ([]string, error) {
	menus, err := r.Visible(ctx, roleID)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, m := range menus {
		if m.Path != "" {
			paths = append(paths, m.Path)
		}
		for _, s := range m.Submenus {
			if s.Path != "" {
				paths = append(paths, s.Path)
			}
		}
	}
	return paths, nil
}

// Start subscribes the resolver to menu mutation events. Call Stop on
// shutdown to release the subscription.
func (r *Resolver) Start(hub *realtime.Hub) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sub != nil {
		return
	}
	r.sub = hub.Subscribe(0)
	go r.loop(r.sub)
}

// Stop releases the hub subscription.
func (r *Resolver) Stop() {
	r.mu.Lock()
	sub := r.sub
	r.sub = nil
	r.mu.Unlock()
	if sub != nil {
		sub.Close()
	}
}

func (r *Resolver) loop(sub *realtime.Subscription) {
	for evt := range sub.C {
		r.apply(evt)
	}
}

// apply merges one live edit into every resolved role set. Role membership
// is carried on the menu record itself, so create/update can re-derive
// whether a set gains or loses the entry; events whose shape is unexpected
// invalidate instead of guessing.
func (r *Resolver) apply(evt realtime.Event) {
	switch evt.Name {
	case realtime.EventMenuCreated, realtime.EventMenuUpdated:
		m, ok := evt.Payload.(domain.Menu)
		if !ok {
			r.invalidateAll()
			return
		}
		r.patch(func(roleID int, menus []domain.Menu) []domain.Menu {
			return upsertForRole(menus, m, roleID)
		})

	case realtime.EventMenuDeleted:
		id, ok := eventID(evt.Payload)
		if !ok {
			r.invalidateAll()
			return
		}
		r.patch(func(_ int, menus []domain.Menu) []domain.Menu {
			return removeMenu(menus, id)
		})

	case realtime.EventSubmenuUpdated:
		s, ok := evt.Payload.(domain.Submenu)
		if !ok {
			r.invalidateAll()
			return
		}
		r.patch(func(_ int, menus []domain.Menu) []domain.Menu {
			return patchSubmenu(menus, s)
		})

	case realtime.EventSubmenuDeleted:
		id, ok := eventID(evt.Payload)
		if !ok {
			r.invalidateAll()
			return
		}
		r.patch(func(_ int, menus []domain.Menu) []domain.Menu {
			return removeSubmenu(menus, id)
		})
	}
}

// patch replaces every resolved role set with the output of fn and
// refreshes the cache entries write-through. Sets already handed out by
// Visible are shared with callers outside the mutex, so fn must return a
// replacement slice and never write into the one it was given.
func (r *Resolver) patch(fn func(roleID int, menus []domain.Menu) []domain.Menu) {
	ctx := context.Background()

	r.mu.Lock()
	defer r.mu.Unlock()
	for roleID, menus := range r.lastGood {
		updated := fn(roleID, menus)
		r.lastGood[roleID] = updated
		if err := r.cache.Set(ctx, roleID, updated); err != nil {
			r.logger.Warn().Err(err).Int("role_id", roleID).Msg("menu cache refresh failed")
		}
	}
}

func (r *Resolver) invalidateAll() {
	ctx := context.Background()

	r.mu.Lock()
	defer r.mu.Unlock()
	for roleID := range r.lastGood {
		if err := r.cache.Invalidate(ctx, roleID); err != nil {
			r.logger.Warn().Err(err).Int("role_id", roleID).Msg("menu cache invalidation failed")
		}
	}
}

func (r *Resolver) remember(ctx context.Context, roleID int, menus []domain.Menu) {
	r.mu.Lock()
	r.lastGood[roleID] = menus
	r.mu.Unlock()

	if err := r.cache.Set(ctx, roleID, menus); err != nil {
		r.logger.Warn().Err(err).Int("role_id", roleID).Msg("menu cache store failed")
	}
}

// --- pure set patch helpers ---
//
// Each helper treats its input as read-only and builds the new set fresh,
// keeping slices returned from Visible stable while events apply.

func upsertForRole(menus []domain.Menu, m domain.Menu, roleID int) []domain.Menu {
	if !m.VisibleTo(roleID) {
		return removeMenu(menus, m.ID)
	}
	out := make([]domain.Menu, 0, len(menus)+1)
	replaced := false
	for _, existing := range menus {
		if existing.ID == m.ID {
			out = append(out, m)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, m)
	}
	return out
}

func removeMenu(menus []domain.Menu, id int) []domain.Menu {
	kept := menus[:0:0]
	for _, m := range menus {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return kept
}

func patchSubmenu(menus []domain.Menu, s domain.Submenu) []domain.Menu {
	out := make([]domain.Menu, len(menus))
	copy(out, menus)
	for i, m := range out {
		if m.ID != s.MenuID {
			continue
		}
		subs := make([]domain.Submenu, 0, len(m.Submenus)+1)
		replaced := false
		for _, existing := range m.Submenus {
			if existing.ID == s.ID {
				subs = append(subs, s)
				replaced = true
				continue
			}
			subs = append(subs, existing)
		}
		if !replaced {
			subs = append(subs, s)
		}
		out[i].Submenus = subs
	}
	return out
}

func removeSubmenu(menus []domain.Menu, id int) []domain.Menu {
	out := make([]domain.Menu, len(menus))
	copy(out, menus)
	for i, m := range out {
		kept := m.Submenus[:0:0]
		for _, s := range m.Submenus {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		out[i].Submenus = kept
	}
	return out
}

func eventID(payload any) (int, bool) {
	switch v := payload.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}
