package auth

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildToken assembles a compact token around the given payload object.
// Header and signature segments are deliberately junk: the decoder must
// only ever look at segment 1.
func buildToken(t *testing.T, payload interface{}) string {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return "eyJhbGciOiJSUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(data) + ".not-a-signature"
}

func TestDecodeTokenRoundTrip(t *testing.T) {
	payload := map[string]interface{}{
		"preferred_username": "amélie", // multi-byte characters must survive
		"exp":                float64(1735689600),
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"user", "öffnen"},
		},
		"resource_access": map[string]interface{}{
			"storefront": map[string]interface{}{
				"roles": []interface{}{"ADMIN"},
			},
		},
	}

	claims := DecodeToken(buildToken(t, payload))

	assert.False(t, claims.Empty())
	assert.Equal(t, payload, claims.Fields)
	assert.Equal(t, "amélie", claims.PreferredUsername())
}

func TestDecodeTokenURLSafeAlphabet(t *testing.T) {
	// A payload whose base64 encoding contains '+' and '/' in the standard
	// alphabet, so the url-safe translation actually matters.
	payload := map[string]interface{}{"blob": "áéíóú~~~???>>>"}
	claims := DecodeToken(buildToken(t, payload))
	assert.Equal(t, payload, claims.Fields)
}

func TestDecodeTokenMalformed(t *testing.T) {
	invalidUTF8 := "h." + base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}) + ".s"
	notAnObject := "h." + base64.RawURLEncoding.EncodeToString([]byte(`[1,2,3]`)) + ".s"
	notJSON := "h." + base64.RawURLEncoding.EncodeToString([]byte(`{{{`)) + ".s"

	cases := map[string]string{
		"absent":           "",
		"no segments":      "just-a-string",
		"empty payload":    "header..signature",
		"invalid base64":   "header.%%%%.signature",
		"invalid utf8":     invalidUTF8,
		"payload not obj":  notAnObject,
		"payload not json": notJSON,
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			claims := DecodeToken(token)
			assert.True(t, claims.Empty())
			assert.Nil(t, claims.Fields)
		})
	}
}
