package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()

	svc, err := NewTokenService(&TokenConfig{
		Secret:   "test-signing-secret",
		TokenTTL: ttl,
	})
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService(&TokenConfig{Secret: "", TokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewTokenService(&TokenConfig{Secret: "  ", TokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewTokenService(&TokenConfig{Secret: "ok", TokenTTL: 0})
	assert.Error(t, err)
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.Generate("staff-123", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-123", claims.StaffID)
	assert.Equal(t, RoleAdmin, claims.Role)

	identity := claims.Identity()
	assert.Equal(t, "staff-123", identity.StaffID)
	assert.True(t, identity.IsAdmin())
}

func TestTokenService_StaffRole(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.Generate("staff-456", RoleStaff)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, claims.Role)
	assert.False(t, claims.Identity().IsAdmin())
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, time.Millisecond)

	token, err := svc.Generate("staff-123", RoleStaff)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, time.Hour)

	verifier, err := NewTokenService(&TokenConfig{
		Secret:   "a-different-secret",
		TokenTTL: time.Hour,
	})
	require.NoError(t, err)

	token, err := issuer.Generate("staff-123", RoleStaff)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(token)
		assert.Error(t, err, "token %q should not validate", token)
	}
}

func TestRoleFromAdmin(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFromAdmin(true))
	assert.Equal(t, RoleStaff, RoleFromAdmin(false))

	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleStaff.Valid())
	assert.False(t, Role("superuser").Valid())
}
