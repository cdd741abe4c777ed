package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) PasswordHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestBcryptHasher_HashNeverEqualsPlaintext(t *testing.T) {
	h := newTestHasher(t)

	for _, password := range []string{"pw1", "correct horse battery staple", "ünïcødé"} {
		hash, err := h.Hash(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)
		assert.True(t, strings.HasPrefix(hash, "$2a$"), "unexpected hash format %q", hash)
	}
}

func TestBcryptHasher_VerifyRoundTrip(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)

	assert.True(t, h.Verify("pw1", hash))
	assert.False(t, h.Verify("pw2", hash))
	assert.False(t, h.Verify("", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same-password", first))
	assert.True(t, h.Verify("same-password", second))
}

func TestBcryptHasher_MalformedHashDoesNotVerify(t *testing.T) {
	h := newTestHasher(t)

	for _, hash := range []string{"", "plain-text", "$2a$10$short", "$2a$99$" + strings.Repeat("a", 53)} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("pw1", hash))
		})
	}
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h, err := NewBcryptHasher(5)
	require.NoError(t, err)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		wantErr bool
	}{
		{"zero selects default", 0, false},
		{"minimum", bcrypt.MinCost, false},
		{"maximum", bcrypt.MaxCost, false},
		{"below minimum", bcrypt.MinCost - 1, true},
		{"above maximum", bcrypt.MaxCost + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewBcryptHasher(tt.cost)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCost)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestBcryptHasher_LongPasswordIsTruncated(t *testing.T) {
	h := newTestHasher(t)
	long := strings.Repeat("p", 80)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	assert.True(t, h.Verify(long, hash))
	assert.True(t, h.Verify(long[:maxPasswordBytes], hash), "only the first 72 bytes are significant")
	assert.False(t, h.Verify(long[:maxPasswordBytes-1], hash))
}
