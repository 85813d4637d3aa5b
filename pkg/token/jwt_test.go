package token

import (
	"errors"
	"testing"
	"time"

	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestVerifier() *Verifier {
	return NewVerifier(utils.JWTConfig{Secret: "unit-test-secret", ExpiryHours: 2}, zap.NewNop())
}

func TestIssueAndVerify(t *testing.T) {
	v := newTestVerifier()
	userID := uuid.New()

	signed, expiresAt, err := v.Issue(userID, "provider")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	claims, err := v.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Sub)
	assert.Equal(t, "provider", claims.Role)

	parsed, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestVerify_Expired(t *testing.T) {
	v := newTestVerifier()

	signed, _, err := v.Issue(uuid.New(), "customer")
	require.NoError(t, err)

	v.WithClock(func() time.Time { return time.Now().Add(3 * time.Hour) })

	_, err = v.Verify(signed)
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestVerify_WrongKey(t *testing.T) {
	signed, _, err := newTestVerifier().Issue(uuid.New(), "customer")
	require.NoError(t, err)

	other := NewVerifier(utils.JWTConfig{Secret: "different-secret", ExpiryHours: 2}, zap.NewNop())
	_, err = other.Verify(signed)
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestVerify_Malformed(t *testing.T) {
	v := newTestVerifier()

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := v.Verify(raw)
		assert.True(t, errors.Is(err, ErrUnauthenticated), "raw=%q", raw)
	}
}

func TestVerify_NonUUIDSubject(t *testing.T) {
	v := newTestVerifier()

	// properly signed token whose subject is not a UUID
	claims := Claims{Sub: "not-a-uuid", Role: "customer", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	_, err = v.Verify(signed)
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestVerifyHeader(t *testing.T) {
	v := newTestVerifier()
	signed, _, err := v.Issue(uuid.New(), "customer")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid bearer", "Bearer " + signed, false},
		{"lowercase scheme", "bearer " + signed, false},
		{"missing header", "", true},
		{"wrong scheme", "Basic " + signed, true},
		{"scheme only", "Bearer", true},
		{"empty token", "Bearer ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyHeader(tt.header)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnauthenticated))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
