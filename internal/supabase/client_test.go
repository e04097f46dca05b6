package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anasnah/Adkari-fin4/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{URL: srv.URL, APIKey: "test-anon-key"})
	require.NoError(t, err)
	return c
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{APIKey: "k"})
	assert.Error(t, err)
	_, err = New(Config{URL: "https://abc.supabase.co"})
	assert.Error(t, err)
}

func TestSignInRejectedCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "test-anon-key", r.Header.Get("apikey"))
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	}))

	_, err := c.Auth().SignIn(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestSignUpDuplicateEmail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
	}))

	_, err := c.Auth().SignUp(context.Background(), "a@x.com", "pw")
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestSignUpReturnsBareUser(t *testing.T) {
	// With email confirmation enabled, GoTrue answers signup with the
	// user object instead of a session.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "email": "a@x.com"})
	}))

	sess, err := c.Auth().SignUp(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.Equal(t, "user-1", sess.User.ID)
}

func TestSelectSingleNoRows(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusNotAcceptable)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "JSON object requested, multiple (or no) rows returned"})
	}))

	_, err := c.From("profiles").Select("*").Eq("id", "nope").Single().Execute(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestSelectBuildsQueryParams(t *testing.T) {
	var captured *http.Request
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		_, _ = w.Write([]byte("[]"))
	}))

	_, err := c.From("dhikrs").Select("*").Eq("category", "morning").Order("order", true).Limit(5).Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, captured)

	q := captured.URL.Query()
	assert.Equal(t, "/rest/v1/dhikrs", captured.URL.Path)
	assert.Equal(t, "*", q.Get("select"))
	assert.Equal(t, "eq.morning", q.Get("category"))
	assert.Equal(t, "order.asc", q.Get("order"))
	assert.Equal(t, "5", q.Get("limit"))
}

func TestUpsertSetsMergePrefer(t *testing.T) {
	var prefer string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefer = r.Header.Get("Prefer")
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.From("dhikrs").ExecuteUpsert(context.Background(), map[string]any{"id": "1", "text": "x"})
	require.NoError(t, err)
	assert.Contains(t, prefer, "resolution=merge-duplicates")
}

func TestDeleteByFilter(t *testing.T) {
	var captured *http.Request
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.From("banners").Eq("id", "b1").ExecuteDelete(context.Background())
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, http.MethodDelete, captured.Method)
	assert.Equal(t, "eq.b1", captured.URL.Query().Get("id"))
}

func TestProviderErrorPreservesMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "database is on fire"})
	}))

	_, err := c.From("dhikrs").Select("*").Execute(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsProvider(err))
	assert.Contains(t, err.Error(), "database is on fire")
}
