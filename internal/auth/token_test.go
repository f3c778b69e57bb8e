package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hormonya/hormonya/internal/model"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	key, err := KeyFromSecret("test-secret")
	require.NoError(t, err)
	return NewIssuer(key, time.Hour)
}

func TestKeyFromSecret(t *testing.T) {
	a, err := KeyFromSecret("secret")
	require.NoError(t, err)
	b, err := KeyFromSecret("secret")
	require.NoError(t, err)
	c, err := KeyFromSecret("other")
	require.NoError(t, err)

	assert.Len(t, a, keySize)
	assert.Equal(t, a, b, "derivation must be deterministic")
	assert.NotEqual(t, a, c)

	_, err = KeyFromSecret("")
	assert.Error(t, err)
}

func TestRandomKey(t *testing.T) {
	a, err := RandomKey()
	require.NoError(t, err)
	b, err := RandomKey()
	require.NoError(t, err)
	assert.Len(t, a, keySize)
	assert.NotEqual(t, a, b)
}

func TestIssueAndParse(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.Issue(&model.User{ID: 42, Email: "ana@example.com"})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email())
	assert.Equal(t, int64(42), claims.UserID)
	assert.Len(t, claims.ID, 26, "jti should be a ULID")
}

func TestParse_Rejects(t *testing.T) {
	issuer := newTestIssuer(t)
	user := &model.User{ID: 1, Email: "ana@example.com"}

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong key", func(t *testing.T) {
		otherKey, err := KeyFromSecret("another-secret")
		require.NoError(t, err)
		token, err := NewIssuer(otherKey, time.Hour).Issue(user)
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := issuer.Issue(user)
		require.NoError(t, err)

		issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { issuer.now = time.Now }()

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "ana@example.com"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ClaimsFromContext(ctx))
	assert.Empty(t, EmailFromContext(ctx))

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "ana@example.com"}}
	ctx = ContextWithClaims(ctx, claims)
	assert.Equal(t, "ana@example.com", EmailFromContext(ctx))
}
