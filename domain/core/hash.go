package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// CorpusHash fingerprints a set of trial identifiers. Order-insensitive so
// parallel fetches of the same corpus fingerprint identically.
type CorpusHash Hash

func ComputeCorpusHash(trialIDs []string) CorpusHash {
	ids := make([]string, len(trialIDs))
	copy(ids, trialIDs)
	sort.Strings(ids)

	var data strings.Builder
	for _, id := range ids {
		data.WriteString(id)
		data.WriteString("\n")
	}
	return CorpusHash(NewHash([]byte(data.String())))
}

func (h CorpusHash) String() string { return Hash(h).String() }
