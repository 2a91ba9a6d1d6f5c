// Package kv is the persistence adapter: a JSON key-value store with a
// distinct error taxonomy so callers can tell a full store apart from an
// unusable one. Two backends are provided — a file-per-key directory store
// and a Postgres table — selected at wire-up time.
package kv

import (
	"context"
	"errors"
)

// ErrUnavailable means the store cannot be used at all (missing or
// unwritable data directory, unreachable database). Probe returns it before
// the server accepts traffic; Set returns it when the condition appears later.
var ErrUnavailable = errors.New("storage unavailable")

// ErrQuotaExceeded means the backing medium is out of space. The mutation did
// not take effect.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrCorrupt means the stored payload exists but is not valid JSON for the
// destination type. Callers discard the value and fall back to a default;
// corrupt data is never fatal.
var ErrCorrupt = errors.New("corrupt stored value")

// Store is the persistence contract. Values are JSON-serialized on Set and
// deserialized on Get. A failed Set means the mutation was not applied —
// there are no retries and no partial writes.
type Store interface {
	// Get reads the value under key into dest. Returns (false, nil) when the
	// key is absent and (false, ErrCorrupt) when the payload does not decode;
	// in both cases the caller should use its default.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set serializes value and writes it under key. Returns ErrUnavailable,
	// ErrQuotaExceeded, or a generic error; each surfaces a distinct
	// user-visible message.
	Set(ctx context.Context, key string, value any) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Probe verifies the store is usable by writing and deleting a sentinel
	// key. Call it once before any real operation.
	Probe(ctx context.Context) error
}

// probeKey is the sentinel written and removed by Probe implementations.
const probeKey = "fuellog:probe"
