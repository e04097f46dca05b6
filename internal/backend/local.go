package backend

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Anasnah/Adkari-fin4/internal/config"
	"github.com/Anasnah/Adkari-fin4/internal/domain"
	"github.com/Anasnah/Adkari-fin4/internal/localstore"
)

// Slot names for the local store, one per persisted collection.
const (
	slotSession = "adkari_user"
	slotUsers   = "adkari_users_db"
	slotDhikrs  = "adkari_dhikrs"
	slotHadiths = "adkari_hadiths"
	slotNews    = "adkari_news"
	slotBanners = "adkari_banners"
	slotOrders  = "adkari_orders"
)

// recoveryUserID is the stable ID of the privileged-recovery identity when
// local mode has to create it from scratch.
const recoveryUserID = "admin-anas-special"

func newLocal(cfg config.Config, store *localstore.Store, log zerolog.Logger) *Service {
	return &Service{
		Identity: &localIdentity{cfg: cfg, store: store, log: log},
		Admin:    &localAdmin{store: store},
		Dhikrs: newLocalCollection(store, slotDhikrs, seedDhikrs(), func(items []domain.Dhikr) {
			sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
		}),
		Hadiths: newLocalCollection(store, slotHadiths, seedHadiths(), nil),
		News: newLocalCollection(store, slotNews, seedNews(), func(items []domain.NewsItem) {
			sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
		}),
		Banners: newLocalCollection[domain.Banner](store, slotBanners, nil, nil),
		Orders:  &localOrders{store: store},
		remote:  false,
	}
}

// localIdentity simulates authentication against the local user table.
// Passwords are not verified here: local mode is an explicitly
// non-production, single-device auth path.
type localIdentity struct {
	cfg   config.Config
	store *localstore.Store
	log   zerolog.Logger
}

func (l *localIdentity) Login(ctx context.Context, email, password string) (*domain.User, error) {
	// The privileged-recovery pair always succeeds, regardless of what
	// the user table holds. This guarantees one recoverable
	// administrative identity even after data loss or a demotion.
	if l.cfg.MatchesRecovery(email, password) {
		u := l.recoveryLogin()
		return &u, nil
	}

	users := localstore.Get(l.store, slotUsers, []domain.User(nil))
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			localstore.Set(l.store, slotSession, &u)
			return &u, nil
		}
	}
	return nil, domain.AuthError("invalid credentials")
}

func (l *localIdentity) recoveryLogin() domain.User {
	users := localstore.Get(l.store, slotUsers, []domain.User(nil))
	for i := range users {
		if strings.EqualFold(users[i].Email, l.cfg.RecoveryEmail) {
			if users[i].Role != domain.RoleAdmin {
				users[i].Role = domain.RoleAdmin
				localstore.Set(l.store, slotUsers, users)
				l.log.Warn().Str("user_id", users[i].ID).Msg("recovery login restored ADMIN role")
			}
			u := users[i]
			localstore.Set(l.store, slotSession, &u)
			return u
		}
	}

	u := domain.User{
		ID:                 recoveryUserID,
		Email:              l.cfg.RecoveryEmail,
		Name:               "Recovery Admin",
		Role:               domain.RoleAdmin,
		SubscriptionStatus: domain.SubscriptionActive,
		Country:            "Morocco",
		City:               "Rabat",
	}
	users = append(users, u)
	localstore.Set(l.store, slotUsers, users)
	localstore.Set(l.store, slotSession, &u)
	return u
}

func (l *localIdentity) Register(ctx context.Context, name, email, password, country, city string) (*domain.User, error) {
	users := localstore.Get(l.store, slotUsers, []domain.User(nil))
	// Duplicate detection is an exact-match scan; the lookup at login is
	// case-insensitive.
	for i := range users {
		if users[i].Email == email {
			return nil, domain.ConflictError("email already registered")
		}
	}

	role := domain.RoleUser
	if l.cfg.AdminEmail(email) {
		role = domain.RoleAdmin
	}
	u := domain.User{
		ID:                 uuid.NewString(),
		Email:              email,
		Name:               name,
		Role:               role,
		SubscriptionStatus: domain.SubscriptionActive,
		Country:            country,
		City:               city,
	}
	users = append(users, u)
	localstore.Set(l.store, slotUsers, users)
	localstore.Set(l.store, slotSession, &u)
	return &u, nil
}

func (l *localIdentity) Logout(ctx context.Context) error {
	l.store.Remove(slotSession)
	return nil
}

func (l *localIdentity) CheckSession(ctx context.Context) (*domain.User, error) {
	// The snapshot is returned verbatim; it can drift from the user table
	// until the next mutation that re-syncs it.
	return localstore.Get(l.store, slotSession, (*domain.User)(nil)), nil
}

func (l *localIdentity) ResetPassword(ctx context.Context, email string) error {
	// No credential store exists in local mode.
	l.log.Info().Str("email", email).Msg("password reset requested (local mode, no-op)")
	return nil
}

func (l *localIdentity) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	l.log.Info().Str("email", email).Msg("password update requested (local mode, no-op)")
	return nil
}

// localAdmin mutates the local user table.
type localAdmin struct {
	store *localstore.Store
}

func (a *localAdmin) ListUsers(ctx context.Context) ([]domain.User, error) {
	return localstore.Get(a.store, slotUsers, []domain.User(nil)), nil
}

func (a *localAdmin) SetRole(ctx context.Context, userID string, role domain.Role) error {
	users := localstore.Get(a.store, slotUsers, []domain.User(nil))
	for i := range users {
		if users[i].ID == userID {
			users[i].Role = role
			localstore.Set(a.store, slotUsers, users)
			// Keep the session snapshot in lockstep when the target is
			// the signed-in user. Only role changes propagate this way.
			if cur := localstore.Get(a.store, slotSession, (*domain.User)(nil)); cur != nil && cur.ID == userID {
				cur.Role = role
				localstore.Set(a.store, slotSession, cur)
			}
			return nil
		}
	}
	return nil
}

func (a *localAdmin) SetSubscriptionStatus(ctx context.Context, userID string, status domain.SubscriptionStatus) error {
	users := localstore.Get(a.store, slotUsers, []domain.User(nil))
	for i := range users {
		if users[i].ID == userID {
			users[i].SubscriptionStatus = status
			localstore.Set(a.store, slotUsers, users)
			return nil
		}
	}
	return nil
}

func (a *localAdmin) DeleteUser(ctx context.Context, userID string) error {
	users := localstore.Get(a.store, slotUsers, []domain.User(nil))
	kept := make([]domain.User, 0, len(users))
	for i := range users {
		if users[i].ID != userID {
			kept = append(kept, users[i])
		}
	}
	localstore.Set(a.store, slotUsers, kept)
	// A session pointing at the deleted user stays stale until the next
	// CheckSession or Logout; callers force a reload after self-deletion.
	return nil
}

// localCollection is generic CRUD over one JSON slot. Reads fall back to
// the seed content until the slot is first written.
type localCollection[T domain.Record] struct {
	store *localstore.Store
	slot  string
	seed  []T
	order func([]T)
}

func newLocalCollection[T domain.Record](store *localstore.Store, slot string, seed []T, order func([]T)) *localCollection[T] {
	return &localCollection[T]{store: store, slot: slot, seed: seed, order: order}
}

func (c *localCollection[T]) load() []T {
	items := localstore.Get(c.store, c.slot, c.seed)
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func (c *localCollection[T]) List(ctx context.Context) ([]T, error) {
	items := c.load()
	if c.order != nil {
		c.order(items)
	}
	return items, nil
}

func (c *localCollection[T]) Upsert(ctx context.Context, rec T) error {
	items := c.load()
	replaced := false
	for i := range items {
		if items[i].RecordID() == rec.RecordID() {
			items[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, rec)
	}
	localstore.Set(c.store, c.slot, items)
	return nil
}

func (c *localCollection[T]) Delete(ctx context.Context, id string) error {
	items := c.load()
	kept := make([]T, 0, len(items))
	for i := range items {
		if items[i].RecordID() != id {
			kept = append(kept, items[i])
		}
	}
	localstore.Set(c.store, c.slot, kept)
	return nil
}

// localOrders appends to the order slot. Last-writer-wins across
// interleaved read-modify-write cycles is accepted for local mode.
type localOrders struct {
	store *localstore.Store
}

func (o *localOrders) Create(ctx context.Context, order domain.Order) error {
	orders := localstore.Get(o.store, slotOrders, []domain.Order(nil))
	order.ID = uuid.NewString()
	order.OrderDate = time.Now().UTC().Format(time.RFC3339)
	orders = append(orders, order)
	localstore.Set(o.store, slotOrders, orders)
	return nil
}

func (o *localOrders) List(ctx context.Context) ([]domain.Order, error) {
	return localstore.Get(o.store, slotOrders, []domain.Order(nil)), nil
}
