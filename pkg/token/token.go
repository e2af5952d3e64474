// Package token reads the claims of a bearer credential without verifying
// it. The decoded payload drives UI personalization and client-side route
// hinting only; the server-side Auth middleware remains the authority.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Claims is the decoded, read-only credential payload.
type Claims struct {
	Sub      int    `json:"sub"`
	Name     string `json:"name"`
	RoleID   int    `json:"roleId"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
}

// Decode extracts the claims from a JWT-shaped credential. It never fails
// loudly: any malformed input (empty string, wrong segment count, invalid
// base64, invalid JSON) yields nil. Signature and expiry are not checked.
func Decode(raw string) *Claims {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil
	}

	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil
	}
	return &c
}

// decodeSegment handles both padded and unpadded base64url, which differs
// between token issuers.
func decodeSegment(seg string) ([]byte, error) {
	if l := len(seg) % 4; l > 0 {
		seg += strings.Repeat("=", 4-l)
	}
	return base64.URLEncoding.DecodeString(seg)
}
