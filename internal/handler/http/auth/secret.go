package auth

import (
	"fmt"
	"strings"
)

// minSecretLength is the minimum JWT secret length accepted at startup.
// 32 bytes matches the HS256 key size.
const minSecretLength = 32

// weakSecrets are values that show up in tutorials and default configs.
// A secret that merely starts with one of these is still rejected.
var weakSecrets = []string{
	"secret",
	"password",
	"changeme",
	"jwt-secret",
	"jwtsecret",
	"default",
	"test",
	"dev",
	"123456",
}

// ValidateSecret checks the JWT signing secret at startup. The server
// must refuse to boot on an empty or guessable secret; a weak secret
// silently breaks every authorization guarantee downstream.
func ValidateSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be empty")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must be at least %d characters (current length: %d)", minSecretLength, len(secret))
	}

	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if strings.HasPrefix(lower, weak) {
			return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be based on common weak values")
		}
	}

	if isRepeatedChar(secret) {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be a repeated character")
	}

	return nil
}

func isRepeatedChar(s string) bool {
	if len(s) == 0 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}
