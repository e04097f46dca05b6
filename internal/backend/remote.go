package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Anasnah/Adkari-fin4/internal/config"
	"github.com/Anasnah/Adkari-fin4/internal/domain"
	"github.com/Anasnah/Adkari-fin4/internal/localstore"
	"github.com/Anasnah/Adkari-fin4/internal/supabase"
)

const (
	tableProfiles = "profiles"
	tableDhikrs   = "dhikrs"
	tableHadiths  = "hadiths"
	tableNews     = "news"
	tableBanners  = "banners"
	tableOrders   = "orders"

	// slotRemoteSession persists auth tokens across restarts, the way the
	// provider's browser SDK keeps them in localStorage.
	slotRemoteSession = "adkari_remote_session"
)

func newRemote(cfg config.Config, client *supabase.Client, store *localstore.Store, log zerolog.Logger) *Service {
	sessions := &sessionStore{store: store, log: log}
	return &Service{
		Identity: &remoteIdentity{cfg: cfg, client: client, sessions: sessions, log: log},
		Admin:    &remoteAdmin{client: client},
		Dhikrs:   &remoteCollection[domain.Dhikr]{client: client, table: tableDhikrs, orderBy: "order", ascending: true},
		Hadiths:  &remoteCollection[domain.Hadith]{client: client, table: tableHadiths},
		News:     &remoteCollection[domain.NewsItem]{client: client, table: tableNews, orderBy: "date", ascending: false},
		Banners:  &remoteCollection[domain.Banner]{client: client, table: tableBanners},
		Orders:   &remoteOrders{client: client},
		remote:   true,
	}
}

// profileRow is the snake_case shape of the profiles table. Missing fields
// map to the application defaults when converted to a domain user.
type profileRow struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	SubscriptionStatus string `json:"subscription_status"`
	Country            string `json:"country"`
	City               string `json:"city"`
}

func (p profileRow) user() domain.User {
	u := domain.User{
		ID:                 p.ID,
		Email:              p.Email,
		Name:               p.Name,
		Role:               domain.Role(p.Role),
		SubscriptionStatus: domain.SubscriptionStatus(p.SubscriptionStatus),
		Country:            p.Country,
		City:               p.City,
	}
	if u.Name == "" {
		u.Name = "User"
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = domain.SubscriptionActive
	}
	if u.Country == "" {
		u.Country = "Morocco"
	}
	if u.City == "" {
		u.City = "Rabat"
	}
	return u
}

func profileFromUser(u domain.User) profileRow {
	return profileRow{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               string(u.Role),
		SubscriptionStatus: string(u.SubscriptionStatus),
		Country:            u.Country,
		City:               u.City,
	}
}

// remoteSession is the persisted token pair.
type remoteSession struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
}

// sessionStore keeps the remote session snapshot in a local slot.
type sessionStore struct {
	store *localstore.Store
	log   zerolog.Logger
}

func (s *sessionStore) save(sess *supabase.Session) {
	rec := &remoteSession{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}
	if sess.User != nil {
		rec.UserID = sess.User.ID
		rec.Email = sess.User.Email
	}
	localstore.Set(s.store, slotRemoteSession, rec)
}

func (s *sessionStore) load() *remoteSession {
	return localstore.Get(s.store, slotRemoteSession, (*remoteSession)(nil))
}

func (s *sessionStore) clear() {
	s.store.Remove(slotRemoteSession)
}

// expired reports whether the access token's exp claim has passed. The
// token is parsed without verification: the provider verifies signatures,
// this only decides when a refresh is due.
func (s *remoteSession) expired() bool {
	if s.AccessToken == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().Add(30 * time.Second).After(exp.Time)
}

// remoteIdentity delegates authentication to the provider and joins the
// authenticated principal with its profile row.
type remoteIdentity struct {
	cfg      config.Config
	client   *supabase.Client
	sessions *sessionStore
	log      zerolog.Logger
}

func (r *remoteIdentity) fetchProfile(ctx context.Context, userID string) (*profileRow, error) {
	body, err := r.client.From(tableProfiles).Select("*").Eq("id", userID).Single().Execute(ctx)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NotFoundError("profile not found")
		}
		return nil, err
	}
	var row profileRow
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, domain.ProviderError("unmarshal profile", err)
	}
	return &row, nil
}

func (r *remoteIdentity) Login(ctx context.Context, email, password string) (*domain.User, error) {
	sess, err := r.client.Auth().SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if sess.User == nil {
		return nil, domain.AuthError("user not found")
	}

	// A principal without a profile row is a consistency fault, not an
	// auth failure; it needs manual cleanup on the provider side.
	row, err := r.fetchProfile(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}

	r.sessions.save(sess)
	u := row.user()
	u.ID = sess.User.ID
	if u.Email == "" {
		u.Email = sess.User.Email
	}
	return &u, nil
}

func (r *remoteIdentity) Register(ctx context.Context, name, email, password, country, city string) (*domain.User, error) {
	sess, err := r.client.Auth().SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if sess.User == nil {
		return nil, domain.ProviderError("registration failed", nil)
	}

	role := domain.RoleUser
	if r.cfg.AdminEmail(email) {
		role = domain.RoleAdmin
	}
	u := domain.User{
		ID:                 sess.User.ID,
		Email:              email,
		Name:               name,
		Role:               role,
		SubscriptionStatus: domain.SubscriptionActive,
		Country:            country,
		City:               city,
	}

	// A failed insert here leaves an orphaned auth principal with no
	// profile. That is surfaced to the caller and not remediated.
	if err := r.client.From(tableProfiles).ExecuteInsert(ctx, []profileRow{profileFromUser(u)}); err != nil {
		return nil, err
	}

	if sess.AccessToken != "" {
		r.sessions.save(sess)
	}
	return &u, nil
}

func (r *remoteIdentity) Logout(ctx context.Context) error {
	if sess := r.sessions.load(); sess != nil && sess.AccessToken != "" {
		if err := r.client.Auth().SignOut(ctx, sess.AccessToken); err != nil {
			// Logout must not be blocked by network failure.
			r.log.Warn().Err(err).Msg("remote sign-out failed, clearing session anyway")
		}
	}
	r.sessions.clear()
	return nil
}

func (r *remoteIdentity) CheckSession(ctx context.Context) (*domain.User, error) {
	sess := r.sessions.load()
	if sess == nil {
		return nil, nil
	}

	if sess.expired() {
		refreshed, err := r.client.Auth().RefreshToken(ctx, sess.RefreshToken)
		if err != nil {
			r.log.Warn().Err(err).Msg("session refresh failed, treating as signed out")
			r.sessions.clear()
			return nil, nil
		}
		r.sessions.save(refreshed)
		sess = r.sessions.load()
		if sess == nil {
			return nil, nil
		}
	}

	user, err := r.client.Auth().GetUser(ctx, sess.AccessToken)
	if err != nil {
		r.log.Warn().Err(err).Msg("session check failed, ignoring")
		return nil, nil
	}

	row, err := r.fetchProfile(ctx, user.ID)
	if err != nil {
		r.log.Warn().Err(err).Str("user_id", user.ID).Msg("profile missing for live session")
		return nil, nil
	}

	u := row.user()
	u.ID = user.ID
	if u.Email == "" {
		u.Email = user.Email
	}
	return &u, nil
}

func (r *remoteIdentity) ResetPassword(ctx context.Context, email string) error {
	return r.client.Auth().ResetPasswordForEmail(ctx, email)
}

func (r *remoteIdentity) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	sess := r.sessions.load()
	if sess == nil || sess.AccessToken == "" {
		return domain.AuthError("not signed in")
	}
	return r.client.Auth().UpdatePassword(ctx, sess.AccessToken, newPassword)
}

// remoteAdmin mutates profile rows directly.
type remoteAdmin struct {
	client *supabase.Client
}

func (a *remoteAdmin) ListUsers(ctx context.Context) ([]domain.User, error) {
	body, err := a.client.From(tableProfiles).Select("*").Order("name", true).Execute(ctx)
	if err != nil {
		return nil, err
	}
	var rows []profileRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, domain.ProviderError("unmarshal profiles", err)
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.user())
	}
	return users, nil
}

func (a *remoteAdmin) SetRole(ctx context.Context, userID string, role domain.Role) error {
	return a.client.From(tableProfiles).Eq("id", userID).
		ExecuteUpdate(ctx, map[string]string{"role": string(role)})
}

func (a *remoteAdmin) SetSubscriptionStatus(ctx context.Context, userID string, status domain.SubscriptionStatus) error {
	return a.client.From(tableProfiles).Eq("id", userID).
		ExecuteUpdate(ctx, map[string]string{"subscription_status": string(status)})
}

func (a *remoteAdmin) DeleteUser(ctx context.Context, userID string) error {
	return a.client.From(tableProfiles).Eq("id", userID).ExecuteDelete(ctx)
}

// remoteCollection is generic CRUD over one PostgREST table.
type remoteCollection[T domain.Record] struct {
	client    *supabase.Client
	table     string
	orderBy   string
	ascending bool
}

func (c *remoteCollection[T]) List(ctx context.Context) ([]T, error) {
	q := c.client.From(c.table).Select("*")
	if c.orderBy != "" {
		q = q.Order(c.orderBy, c.ascending)
	}
	body, err := q.Execute(ctx)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, domain.ProviderError("unmarshal "+c.table, err)
	}
	return items, nil
}

func (c *remoteCollection[T]) Upsert(ctx context.Context, rec T) error {
	return c.client.From(c.table).ExecuteUpsert(ctx, rec)
}

func (c *remoteCollection[T]) Delete(ctx context.Context, id string) error {
	return c.client.From(c.table).Eq("id", id).ExecuteDelete(ctx)
}

// orderRow is the snake_case shape of the orders table. The database
// assigns id and order_date on insert.
type orderRow struct {
	ID              string  `json:"id,omitempty"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	ShippingAddress string  `json:"shipping_address"`
	ProductName     string  `json:"product_name"`
	TotalAmount     float64 `json:"total_amount"`
	OrderDate       string  `json:"order_date,omitempty"`
}

type remoteOrders struct {
	client *supabase.Client
}

func (o *remoteOrders) Create(ctx context.Context, order domain.Order) error {
	return o.client.From(tableOrders).ExecuteInsert(ctx, []orderRow{{
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		ShippingAddress: order.ShippingAddress,
		ProductName:     order.ProductName,
		TotalAmount:     order.TotalAmount,
	}})
}

func (o *remoteOrders) List(ctx context.Context) ([]domain.Order, error) {
	body, err := o.client.From(tableOrders).Select("*").Order("order_date", false).Execute(ctx)
	if err != nil {
		return nil, err
	}
	var rows []orderRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, domain.ProviderError("unmarshal orders", err)
	}
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, domain.Order{
			ID:              row.ID,
			CustomerName:    row.CustomerName,
			CustomerEmail:   row.CustomerEmail,
			ShippingAddress: row.ShippingAddress,
			ProductName:     row.ProductName,
			TotalAmount:     row.TotalAmount,
			OrderDate:       row.OrderDate,
		})
	}
	return orders, nil
}
