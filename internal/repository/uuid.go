package repository

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNoRows is returned by updates that matched nothing.
var ErrNoRows = errors.New("no rows affected")

// isUUID reports whether s can be compared against a uuid column. Ids that
// are not uuids cannot match any row, so lookups short-circuit instead of
// letting Postgres reject the cast.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
