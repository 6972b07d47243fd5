package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID. Used to correlate a request across log lines;
// the time prefix keeps IDs sortable in log search.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
