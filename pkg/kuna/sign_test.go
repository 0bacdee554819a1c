package kuna

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_GoldenVectors(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		path   string
		nonce  string
		body   string
		want   string
	}{
		{
			name:   "auth me with empty body",
			secret: "kuna_secret",
			path:   "auth/me",
			nonce:  "1560007410000",
			body:   "{}",
			want:   "a0c57a1de4ef8ad20626fdebd5698a18551576cee76219d103fa9cf8305db07ab1fa65ffe9bd0f21da01bdf6707eba67",
		},
		{
			name:   "wallets",
			secret: "kuna_secret",
			path:   "auth/r/wallets",
			nonce:  "1560007410000",
			body:   "{}",
			want:   "21973e716276dea3f29d032528707aad78ed0313759923c19d1bf9e7ded184ca56a16df1ce5ee30d47b6b1eba2308c6f",
		},
		{
			name:   "history with params",
			secret: "another_secret",
			path:   "auth/r/orders/hist",
			nonce:  "1595000000123",
			body:   `{"limit":25,"sort":-1}`,
			want:   "c459a0a40dc3fcbd47a1221a18744d3af4fce7d65e769abf6587d2e4b4c2e9801fbb2c5deb43738fd91301f38b6cb31a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sign(tt.secret, tt.path, tt.nonce, []byte(tt.body))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	first := sign("kuna_secret", "auth/me", "1560007410000", []byte("{}"))
	second := sign("kuna_secret", "auth/me", "1560007410000", []byte("{}"))
	assert.Equal(t, first, second)
}

func TestSign_NonceChangesSignature(t *testing.T) {
	base := sign("kuna_secret", "auth/me", "1560007410000", []byte("{}"))
	bumped := sign("kuna_secret", "auth/me", "1560007410001", []byte("{}"))
	assert.NotEqual(t, base, bumped)
	assert.Equal(t,
		"216a2543a77ed96fe0bfde6062f93e81c7433d899d8576b5c33ce14ec0d2a93a255ebd5c7151596c3a00bb17a4c663c3",
		bumped)
}

func TestNonceSource_StrictlyIncreasing(t *testing.T) {
	var src nonceSource

	prev := int64(0)
	for i := 0; i < 1000; i++ {
		value, err := strconv.ParseInt(src.Next(), 10, 64)
		require.NoError(t, err)
		require.Greater(t, value, prev)
		prev = value
	}
}

func TestNonceSource_ConcurrentUnique(t *testing.T) {
	const (
		workers = 8
		draws   = 200
	)

	var src nonceSource
	results := make(chan string, workers*draws)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < draws; j++ {
				results <- src.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, workers*draws)
	for nonce := range results {
		_, dup := seen[nonce]
		require.False(t, dup, "duplicate nonce %s", nonce)
		seen[nonce] = struct{}{}
	}
	assert.Len(t, seen, workers*draws)
}
