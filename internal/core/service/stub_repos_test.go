package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/realtime"
)

// In-memory stub repositories shared by the service tests. They clone on
// read and write so tests cannot observe aliasing that the real driver
// would never produce.

func testHub() (*realtime.Hub, *realtime.Subscription) {
	hub := realtime.NewHub(zerolog.Nop())
	return hub, hub.Subscribe(64)
}

// drainEvents returns every event currently buffered on the subscription.
func drainEvents(sub *realtime.Subscription) []realtime.Event {
	var out []realtime.Event
	for {
		select {
		case evt := <-sub.C:
			out = append(out, evt)
		default:
			return out
		}
	}
}

// --- users ---

type stubUserRepo struct {
	nextID int
	users  map[int]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) {
	ids := make([]int, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.users[id])
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, other := range r.users {
		if other.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// --- roles ---

type stubRoleRepo struct {
	roles map[int]domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: map[int]domain.Role{
		domain.RoleAdmin: {ID: domain.RoleAdmin, Name: "Administrador"},
		2:                {ID: 2, Name: "Operador"},
	}}
}

func (r *stubRoleRepo) ListRoles(context.Context) ([]domain.Role, error) {
	ids := make([]int, 0, len(r.roles))
	for id := range r.roles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]domain.Role, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.roles[id])
	}
	return out, nil
}

func (r *stubRoleRepo) FindRole(_ context.Context, id int) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

// --- orders ---

type stubOrderRepo struct {
	nextID int
	orders map[int]*domain.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[int]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone
}

func (r *stubOrderRepo) List(context.Context) ([]domain.Order, error) {
	ids := make([]int, 0, len(r.orders))
	for id := range r.orders {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		out = append(out, *cloneOrder(r.orders[id]))
	}
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id int) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.nextID++
	o.ID = r.nextID
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *domain.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// --- products ---

type stubProductRepo struct {
	nextID   int
	products map[int]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int]*domain.Product)}
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]domain.Product, int64, error) {
	ids := make([]int, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := []domain.Product{}
	for _, id := range ids {
		p := r.products[id]
		if filter.CategoryID > 0 && p.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.nextID++
	p.ID = r.nextID
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// --- menus ---

type stubMenuRepo struct {
	nextID    int
	nextSubID int
	menus     map[int]*domain.Menu
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{menus: make(map[int]*domain.Menu)}
}

func cloneMenu(m *domain.Menu) *domain.Menu {
	if m == nil {
		return nil
	}
	clone := *m
	clone.RoleIDs = append([]int(nil), m.RoleIDs...)
	clone.Submenus = append([]domain.Submenu(nil), m.Submenus...)
	return &clone
}

func (r *stubMenuRepo) List(context.Context) ([]domain.Menu, error) {
	ids := make([]int, 0, len(r.menus))
	for id := range r.menus {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]domain.Menu, 0, len(ids))
	for _, id := range ids {
		out = append(out, *cloneMenu(r.menus[id]))
	}
	return out, nil
}

func (r *stubMenuRepo) ListByRole(ctx context.Context, roleID int) ([]domain.Menu, error) {
	all, _ := r.List(ctx)
	out := []domain.Menu{}
	for _, m := range all {
		if m.VisibleTo(roleID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id int) (*domain.Menu, error) {
	m, ok := r.menus[id]
	if !ok {
		return nil, domain.ErrMenuNotFound
	}
	return cloneMenu(m), nil
}

func (r *stubMenuRepo) FindBySubmenu(_ context.Context, submenuID int) (*domain.Menu, error) {
	for _, m := range r.menus {
		for _, sub := range m.Submenus {
			if sub.ID == submenuID {
				return cloneMenu(m), nil
			}
		}
	}
	return nil, domain.ErrSubmenuNotFound
}

func (r *stubMenuRepo) Create(_ context.Context, m *domain.Menu) error {
	r.nextID++
	m.ID = r.nextID
	r.menus[m.ID] = cloneMenu(m)
	return nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *domain.Menu) error {
	if _, ok := r.menus[m.ID]; !ok {
		return domain.ErrMenuNotFound
	}
	r.menus[m.ID] = cloneMenu(m)
	return nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.menus[id]; !ok {
		return domain.ErrMenuNotFound
	}
	delete(r.menus, id)
	return nil
}

func (r *stubMenuRepo) NextSubmenuID(context.Context) (int, error) {
	r.nextSubID++
	return 1000 + r.nextSubID, nil
}

// --- appointments ---

type stubAppointmentRepo struct {
	nextID int
	appts  map[int]*domain.Appointment
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appts: make(map[int]*domain.Appointment)}
}

func (r *stubAppointmentRepo) List(context.Context) ([]domain.Appointment, error) {
	ids := make([]int, 0, len(r.appts))
	for id := range r.appts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]domain.Appointment, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.appts[id])
	}
	return out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id int) (*domain.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) error {
	r.nextID++
	a.ID = r.nextID
	clone := *a
	r.appts[a.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	if _, ok := r.appts[a.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	clone := *a
	r.appts[a.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.appts[id]; !ok {
		return domain.ErrAppointmentNotFound
	}
	delete(r.appts, id)
	return nil
}
