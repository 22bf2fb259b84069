package testhelpers

import (
	"encoding/base64"
	"fmt"
)

// GenerateTestJWT creates a test JWT token for use when verification is
// disabled. The token has a valid structure but no signature (alg: none).
func GenerateTestJWT(sub, tenantID, email string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	payload := fmt.Sprintf(`{"sub":"%s","oid":"%s"`, sub, sub)
	if tenantID != "" {
		payload += fmt.Sprintf(`,"tid":"%s"`, tenantID)
	}
	if email != "" {
		payload += fmt.Sprintf(`,"email":"%s"`, email)
	}
	payload += "}"

	encodedPayload := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return fmt.Sprintf("%s.%s.", header, encodedPayload)
}

// GenerateTestJWTWithBearer returns a token with the "Bearer " prefix for
// the Authorization header.
func GenerateTestJWTWithBearer(sub, tenantID, email string) string {
	return "Bearer " + GenerateTestJWT(sub, tenantID, email)
}
