package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// TaggedHex mints ids like "run-3f8a9c2e4d6b0157": a short kind tag over
// 8 random bytes. The tag keeps archived files and log lines greppable by
// kind; an empty tag yields the bare hex.
type TaggedHex struct {
	Tag string
}

func (g TaggedHex) New() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	if g.Tag == "" {
		return hex.EncodeToString(buf)
	}
	return g.Tag + "-" + hex.EncodeToString(buf)
}
