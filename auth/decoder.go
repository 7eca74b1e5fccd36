package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"storefront-client/models"
)

// DecodeToken extracts the payload segment of a compact signed token and
// parses it into claims. No signature or expiry verification happens here:
// the result only feeds advisory UI gating, never an access-control
// decision. Any malformed input decodes to empty claims so that role
// resolution degrades to CLIENT instead of failing the caller.
func DecodeToken(token string) models.TokenClaims {
	if token == "" {
		return models.TokenClaims{}
	}

	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return models.TokenClaims{}
	}

	// Payload is base64url; translate to the standard alphabet and restore
	// padding before decoding.
	payload := strings.ReplaceAll(parts[1], "-", "+")
	payload = strings.ReplaceAll(payload, "_", "/")
	if rem := len(payload) % 4; rem != 0 {
		payload += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return models.TokenClaims{}
	}

	// The payload must be UTF-8 text; anything else is a malformed token
	if !utf8.Valid(raw) {
		return models.TokenClaims{}
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.TokenClaims{}
	}

	return models.TokenClaims{Raw: raw, Fields: fields}
}
