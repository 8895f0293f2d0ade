// Package id generates identifiers for drafts and submissions.
package id

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/rs/xid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns an unguessable identifier: a random UUIDv4 encoded as 26
// lowercase base32 characters. Use it for anything that acts as a bearer
// token, such as the form draft cookie.
func NewID() (string, error) {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	raw[6] = (raw[6] & 0x0f) | 0x40
	raw[8] = (raw[8] & 0x3f) | 0x80
	return strings.ToLower(encoding.EncodeToString(raw[:])), nil
}

// NewReference returns a short, time-sortable reference for records that
// are shown to staff, such as submitted leads.
func NewReference() string {
	return xid.New().String()
}
