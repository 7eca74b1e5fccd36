package auth

import (
	"strings"

	"storefront-client/models"

	"github.com/tidwall/gjson"
)

// RolesFromClaims collects every role name the claims carry: the realm-wide
// list plus the per-client lists under resource_access, in iteration order.
// Duplicates are kept. Malformed shapes contribute nothing; gjson traversal
// never fails on unexpected structure.
func RolesFromClaims(claims models.TokenClaims) []string {
	if claims.Empty() {
		return nil
	}

	var roles []string

	for _, r := range gjson.GetBytes(claims.Raw, "realm_access.roles").Array() {
		if r.Type == gjson.String {
			roles = append(roles, r.String())
		}
	}

	gjson.GetBytes(claims.Raw, "resource_access").ForEach(func(_, client gjson.Result) bool {
		for _, r := range client.Get("roles").Array() {
			if r.Type == gjson.String {
				roles = append(roles, r.String())
			}
		}
		return true
	})

	return roles
}

// ResolveRole reduces the claims to the single effective role. ADMIN holds
// iff any role string equals "ADMIN" case-insensitively; everything else,
// including empty claims, resolves to CLIENT.
func ResolveRole(claims models.TokenClaims) models.Role {
	for _, r := range RolesFromClaims(claims) {
		if strings.EqualFold(r, string(models.RoleAdmin)) {
			return models.RoleAdmin
		}
	}
	return models.RoleClient
}
