package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// EntityKind is the closed set of id-bearing entities. Using a type instead
// of a bare string keeps prefix mistakes out of call sites.
type EntityKind string

const (
	KindProject EntityKind = "project"
	KindTag     EntityKind = "tag"
	KindCard    EntityKind = "card"
	KindSession EntityKind = "session"
)

func (k EntityKind) valid() bool {
	switch k {
	case KindProject, KindTag, KindCard, KindSession:
		return true
	}
	return false
}

// NewID returns kind-<suffix> where suffix is 8 chars of base32 (lowercase,
// no padding). 8 chars base32 ~= 40 bits of space; plenty for a single
// user's document.
func NewID(kind EntityKind) (string, error) {
	if !kind.valid() {
		return "", errInvalidEntityKind(string(kind))
	}
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return string(kind) + "-" + suffix, nil
}
