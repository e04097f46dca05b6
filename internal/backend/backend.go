// Package backend is the application's service facade: identity, session,
// content CRUD and administrative operations over one of two substitutable
// stores. The store is chosen once at construction from the process
// configuration and never changes for the process lifetime; external
// contracts are identical in both modes.
package backend

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Anasnah/Adkari-fin4/internal/config"
	"github.com/Anasnah/Adkari-fin4/internal/domain"
	"github.com/Anasnah/Adkari-fin4/internal/localstore"
	"github.com/Anasnah/Adkari-fin4/internal/supabase"
)

// IdentityService handles login, registration, session state and password
// management. Authorization of the returned identity is the caller's
// responsibility.
type IdentityService interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, name, email, password, country, city string) (*domain.User, error)
	Logout(ctx context.Context) error
	// CheckSession returns the signed-in identity, or (nil, nil) when no
	// session exists. Absence of a session is a normal outcome.
	CheckSession(ctx context.Context) (*domain.User, error)
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error
}

// AdminService mutates other users' identities. Callers must have checked
// the acting user's role already; the service itself does not.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, userID string, role domain.Role) error
	SetSubscriptionStatus(ctx context.Context, userID string, status domain.SubscriptionStatus) error
	DeleteUser(ctx context.Context, userID string) error
}

// Collection is generic CRUD over one content collection. Upsert is keyed
// on the record ID only; deleting an unknown ID is a no-op.
type Collection[T domain.Record] interface {
	List(ctx context.Context) ([]T, error)
	Upsert(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
}

// OrderService appends to the order log. Orders are write-once.
type OrderService interface {
	Create(ctx context.Context, order domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
}

// Service is the backend facade handed to the rest of the application.
type Service struct {
	Identity IdentityService
	Admin    AdminService

	Dhikrs  Collection[domain.Dhikr]
	Hadiths Collection[domain.Hadith]
	News    Collection[domain.NewsItem]
	Banners Collection[domain.Banner]
	Orders  OrderService

	remote bool
}

// RemoteMode reports which store backs the facade.
func (s *Service) RemoteMode() bool { return s.remote }

// New builds the facade. Remote mode is selected when Supabase credentials
// look usable; otherwise everything is served from device-local storage.
func New(cfg config.Config, log zerolog.Logger) (*Service, error) {
	store := localstore.Open(cfg.DataDir, log)

	if cfg.RemoteConfigured() {
		client, err := supabase.New(supabase.Config{
			URL:    cfg.SupabaseURL,
			APIKey: cfg.SupabaseAnonKey,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("backend: remote mode")
		return newRemote(cfg, client, store, log), nil
	}

	log.Info().Msg("backend: local mode")
	return newLocal(cfg, store, log), nil
}
