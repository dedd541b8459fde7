package shopify

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestConfigured(t *testing.T) {
	require.False(t, New("", "", 0, zerolog.Nop()).Configured())
	require.False(t, New("shop.example.com", "", 0, zerolog.Nop()).Configured())
	require.True(t, New("shop.example.com", "token", 0, zerolog.Nop()).Configured())
}

func TestParseCallLimit(t *testing.T) {
	used, capacity, ok := parseCallLimit("72/80")
	require.True(t, ok)
	require.Equal(t, 72, used)
	require.Equal(t, 80, capacity)

	_, _, ok = parseCallLimit("garbage")
	require.False(t, ok)
	_, _, ok = parseCallLimit("")
	require.False(t, ok)
}

func TestNextBackoffCaps(t *testing.T) {
	d := 500 * time.Millisecond
	for i := 0; i < 20; i++ {
		d = nextBackoff(d)
		require.LessOrEqual(t, d, 5*time.Second)
	}
	require.Equal(t, 5*time.Second, d)
}

func TestNextLinkHeader(t *testing.T) {
	h := `<https://shop.example.com/admin/api/2025-01/products.json?page_info=abc&limit=250>; rel="next"`
	m := nextLinkRe.FindStringSubmatch(h)
	require.NotNil(t, m)
	require.Equal(t, "https://shop.example.com/admin/api/2025-01/products.json?page_info=abc&limit=250", m[1])

	// a previous-only Link must not be followed
	require.Nil(t, nextLinkRe.FindStringSubmatch(`<https://x>; rel="previous"`))
}
