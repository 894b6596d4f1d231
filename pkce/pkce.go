// Package pkce generates S256 code verifier/challenge pairs for the OAuth
// authorization code flow (RFC 7636).
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
)

// SeedSize is the number of bytes encoded into a verifier.
const SeedSize = 32

// Length is the character length of both the verifier and the challenge.
const Length = 43

// PKCE is a verifier and its challenge. The verifier is a single use secret
// presented at token exchange; the challenge goes into the authorization URL.
type PKCE struct {
	Verifier  string `json:"verifier"`
	Challenge string `json:"challenge"`
}

// FromSeed derives a pair from 32 bytes: the verifier is the unpadded
// base64url seed and the challenge the unpadded base64url SHA-256 of it.
func FromSeed(seed [SeedSize]byte) *PKCE {
	verifier := base64.RawURLEncoding.EncodeToString(seed[:])
	return &PKCE{
		Verifier:  verifier,
		Challenge: oauth2.S256ChallengeFromVerifier(verifier),
	}
}

// FromString hashes input with SHA-256 and uses the digest as the seed.
// It is deterministic and mostly useful in tests.
func FromString(input string) *PKCE {
	return FromSeed(sha256.Sum256([]byte(input)))
}

// New draws a fresh seed from crypto/rand.
func New() (*PKCE, error) {
	var seed [SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to read random seed: %w", err)
	}
	return FromSeed(seed), nil
}

// Method returns the challenge method sent with the authorization request.
func (p *PKCE) Method() string {
	return "S256"
}

// Verify reports whether challenge was derived from the pair's verifier.
func (p *PKCE) Verify(challenge string) bool {
	return challenge == oauth2.S256ChallengeFromVerifier(p.Verifier)
}
