package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteConfigured(t *testing.T) {
	cases := []struct {
		name string
		url  string
		key  string
		want bool
	}{
		{"both set", "https://abc.supabase.co", "real-anon-key", true},
		{"missing url", "", "real-anon-key", false},
		{"missing key", "https://abc.supabase.co", "", false},
		{"template url", "https://your-project-id.supabase.co", "real-anon-key", false},
		{"placeholder in url", "https://placeholder.supabase.co", "real-anon-key", false},
		{"template key", "https://abc.supabase.co", "your_anon_key_here", false},
		{"placeholder key", "https://abc.supabase.co", "placeholder", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{SupabaseURL: tc.url, SupabaseAnonKey: tc.key}
			assert.Equal(t, tc.want, cfg.RemoteConfigured())
		})
	}
}

func TestMatchesRecovery(t *testing.T) {
	cfg := Config{RecoveryEmail: "anasnahilo20@gmail.com", RecoveryPassword: "Anas@2000"}

	assert.True(t, cfg.MatchesRecovery("anasnahilo20@gmail.com", "Anas@2000"))
	assert.True(t, cfg.MatchesRecovery("ANASNAHILO20@GMAIL.COM", "Anas@2000"), "email match is case-insensitive")
	assert.False(t, cfg.MatchesRecovery("anasnahilo20@gmail.com", "anas@2000"), "password match is exact")
	assert.False(t, cfg.MatchesRecovery("someone@else.com", "Anas@2000"))
}

func TestAdminEmail(t *testing.T) {
	cfg := Config{RecoveryEmail: "anasnahilo20@gmail.com"}

	assert.True(t, cfg.AdminEmail("staff@adkari.com"))
	assert.True(t, cfg.AdminEmail("Staff@Adkari.COM"))
	assert.True(t, cfg.AdminEmail("anasnahilo20@gmail.com"))
	assert.False(t, cfg.AdminEmail("user@example.com"))
	assert.False(t, cfg.AdminEmail("adkari.com@example.com"))
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("ADKARI_DATA_DIR", "")
	t.Setenv("ADKARI_RECOVERY_EMAIL", "")
	t.Setenv("ADKARI_RECOVERY_PASSWORD", "")

	cfg := FromEnv()
	assert.False(t, cfg.RemoteConfigured())
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.RecoveryEmail)
	assert.NotEmpty(t, cfg.RecoveryPassword)
}
