// Package auth implements the operator credential gate. There are no
// sessions and no expiry: every privileged call presents the credential and
// the gate re-checks it against the one configured secret.
package auth

import (
	"crypto/subtle"
	"errors"
)

// PasswordHeader carries the operator credential on privileged HTTP calls.
const PasswordHeader = "X-Admin-Password"

// ErrUnauthorized is returned for any credential that does not match the
// configured secret. The gate reveals nothing beyond pass/fail.
var ErrUnauthorized = errors.New("unauthorized")

// Gate validates the operator credential. It is stateless; a Gate can be
// shared freely across goroutines.
type Gate struct {
	secret string
}

func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Authorize checks the provided credential. An empty configured secret
// refuses everything: a misconfigured server must not expose the operator
// surface.
func (g *Gate) Authorize(provided string) error {
	if g.secret == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(g.secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
