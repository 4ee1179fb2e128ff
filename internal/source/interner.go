package source

import (
	"sync"

	"golang.org/x/text/unicode/norm"
)

// StringID identifies an interned name. Equal names share one StringID;
// equality and hashing on StringID are constant time.
type StringID uint32

// NoStringID marks the absence of an interned name.
const NoStringID StringID = 0

// IsValid reports whether the StringID refers to an interned name.
func (id StringID) IsValid() bool { return id != NoStringID }

// Interner canonicalizes identifier text. Identifiers are normalized to
// Unicode NFC before interning so that visually-identical names typed with
// different combining-character sequences resolve to the same symbol.
type Interner struct {
	mu    sync.RWMutex
	byStr map[string]StringID
	byID  []string
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		byStr: make(map[string]StringID, 256),
		byID:  []string{""}, // index 0 reserved for NoStringID
	}
}

// Intern normalizes and interns s, returning its stable StringID.
func (in *Interner) Intern(s string) StringID {
	s = norm.NFC.String(s)

	in.mu.RLock()
	if id, ok := in.byStr[s]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.byStr[s]; ok {
		return id
	}
	id := StringID(len(in.byID)) //nolint:gosec // bounded by practical identifier counts
	in.byID = append(in.byID, s)
	in.byStr[s] = id
	return id
}

// Lookup returns the text for an interned name.
func (in *Interner) Lookup(id StringID) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.byID) {
		return ""
	}
	return in.byID[id]
}
