package chat

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), "", "", zerolog.Nop())
	assert.Error(t, err)
}

func TestFallbackIsArabic(t *testing.T) {
	// The fallback is user-facing copy and must never be empty.
	assert.NotEmpty(t, Fallback)
}
