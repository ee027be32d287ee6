package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestJWTManager_SignAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", 24*time.Hour)
	user := SessionUser{ID: "user-1", FirstName: "Ada", Email: "ada@example.com", IsVerified: true}

	token, exp, err := m.Sign(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user, claims.User)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestJWTManager_Expiry(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewJWTManager("test-secret", 24*time.Hour)
	m.now = fixedClock(issued)

	token, _, err := m.Sign(SessionUser{ID: "user-1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{"right after issue", issued.Add(time.Minute), false},
		{"just before one day", issued.Add(24*time.Hour - time.Second), false},
		{"after one day", issued.Add(24*time.Hour + time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.now = fixedClock(tt.at)
			claims, err := m.Parse(token)
			if tt.wantErr {
				assert.ErrorIs(t, err, jwt.ErrTokenExpired)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.User.ID)
		})
	}
}

func TestJWTManager_RejectsForeignTokens(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, _, err := other.Sign(SessionUser{ID: "user-1"})
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)

	_, err = m.Parse("not-a-token")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{User: SessionUser{ID: "user-1"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(unsigned)
	assert.Error(t, err)
}
