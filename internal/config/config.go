// Package config evaluates process configuration once at startup. The
// backend mode decision derived from it is immutable for the process
// lifetime.
package config

import (
	"crypto/subtle"
	"os"
	"strings"
)

const (
	defaultRecoveryEmail    = "anasnahilo20@gmail.com"
	defaultRecoveryPassword = "Anas@2000"
	defaultDataDir          = "./adkari_data"

	// AdminDomain grants ADMIN at registration to company addresses.
	AdminDomain = "@adkari.com"
)

// Placeholder sentinels shipped in .env templates. Credentials matching
// them are treated as absent, not invalid.
const (
	placeholderURL = "https://your-project-id.supabase.co"
	placeholderKey = "your_anon_key_here"
)

// Config holds the environment-supplied settings for both backend modes.
type Config struct {
	// SupabaseURL and SupabaseAnonKey select remote mode when both look
	// usable.
	SupabaseURL     string
	SupabaseAnonKey string

	// DataDir is where local mode keeps its JSON slots.
	DataDir string

	// RecoveryEmail and RecoveryPassword form the privileged-recovery
	// pair: the one login guaranteed administrative access in local mode
	// regardless of stored data.
	RecoveryEmail    string
	RecoveryPassword string
}

// FromEnv reads configuration from the environment, applying defaults for
// anything unset.
func FromEnv() Config {
	cfg := Config{
		SupabaseURL:      os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:  os.Getenv("SUPABASE_ANON_KEY"),
		DataDir:          os.Getenv("ADKARI_DATA_DIR"),
		RecoveryEmail:    os.Getenv("ADKARI_RECOVERY_EMAIL"),
		RecoveryPassword: os.Getenv("ADKARI_RECOVERY_PASSWORD"),
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.RecoveryEmail == "" {
		cfg.RecoveryEmail = defaultRecoveryEmail
	}
	if cfg.RecoveryPassword == "" {
		cfg.RecoveryPassword = defaultRecoveryPassword
	}
	return cfg
}

// RemoteConfigured reports whether remote-backend credentials are present
// and not a known placeholder. Absence of configuration is a normal state,
// not a failure: the caller falls back to local mode.
func (c Config) RemoteConfigured() bool {
	if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
		return false
	}
	if c.SupabaseURL == placeholderURL || strings.Contains(c.SupabaseURL, "placeholder") {
		return false
	}
	if c.SupabaseAnonKey == placeholderKey || c.SupabaseAnonKey == "placeholder" {
		return false
	}
	return true
}

// MatchesRecovery compares a login attempt against the privileged-recovery
// pair. The email is case-insensitive, the password is not. Comparison is
// constant time.
func (c Config) MatchesRecovery(email, password string) bool {
	e := subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(strings.ToLower(c.RecoveryEmail)))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(c.RecoveryPassword))
	return e&p == 1
}

// AdminEmail reports whether an address is granted ADMIN at registration:
// either the company domain or the recovery address itself.
func (c Config) AdminEmail(email string) bool {
	lower := strings.ToLower(email)
	return strings.HasSuffix(lower, AdminDomain) || lower == strings.ToLower(c.RecoveryEmail)
}
