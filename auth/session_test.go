package auth

import (
	"encoding/base64"
	"testing"

	"storefront-client/models"

	"github.com/stretchr/testify/assert"
)

func tokenWithRealmRoles(roles string) string {
	payload := `{"preferred_username":"tester","realm_access":{"roles":[` + roles + `]}}`
	return "h." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".s"
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()

	assert.False(t, s.Authenticated())
	assert.Equal(t, models.RoleClient, s.Role())

	gen := s.Generation()
	s.SetToken(tokenWithRealmRoles(`"ADMIN"`), "tester")

	assert.True(t, s.Authenticated())
	assert.Equal(t, "tester", s.Username())
	assert.Equal(t, models.RoleAdmin, s.Role())
	assert.Equal(t, gen+1, s.Generation())

	s.End()
	assert.False(t, s.Authenticated())
	assert.Equal(t, models.RoleClient, s.Role())
	assert.Equal(t, gen+2, s.Generation())
}

// Role is a pure function of the current token, recomputed per call
func TestSessionRoleFollowsTokenChanges(t *testing.T) {
	s := NewSession()

	s.SetToken(tokenWithRealmRoles(`"user"`), "tester")
	assert.Equal(t, models.RoleClient, s.Role())

	s.SetToken(tokenWithRealmRoles(`"user","admin"`), "tester")
	assert.Equal(t, models.RoleAdmin, s.Role())

	s.SetToken(tokenWithRealmRoles(`"user"`), "tester")
	assert.Equal(t, models.RoleClient, s.Role())
}
