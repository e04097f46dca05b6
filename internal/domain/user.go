// Package domain defines the data model and error taxonomy shared by the
// local and remote backends.
package domain

// Role is a user's privilege level.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// SubscriptionStatus tracks a user's membership state.
type SubscriptionStatus string

const (
	SubscriptionPending SubscriptionStatus = "PENDING"
	SubscriptionActive  SubscriptionStatus = "ACTIVE"
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
	SubscriptionBanned  SubscriptionStatus = "BANNED"
)

// User is an account record. Credentials are never stored here: the remote
// auth service owns them, and local mode does not verify passwords at all.
// The JSON tags are the local-mode wire shape; remote profile rows use
// snake_case columns and are translated at the backend boundary.
type User struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	Role               Role               `json:"role"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	Country            string             `json:"country"`
	City               string             `json:"city"`
}
