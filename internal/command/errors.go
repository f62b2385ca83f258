package command

import (
	"errors"
	"strconv"

	"github.com/vpol/redis/internal/keyspace"
)

// ErrWrongType re-exports the keyspace collaborator's type-mismatch
// error so callers only need to import this package.
var ErrWrongType = keyspace.ErrWrongType

// ErrSyntax is returned for a malformed count argument or a surplus/
// missing argument.
var ErrSyntax = errors.New("ERR syntax error")

// ErrOutOfRange is returned for a negative count where the command
// does not permit one.
var ErrOutOfRange = errors.New("ERR value is out of range, must be positive")

// ErrAllocation stands in for the allocator collaborator's
// out-of-memory signal (spec.md §7 kind 4). This module's SetObject
// operations never fail allocation in practice (they use Go's
// garbage-collected heap), but the error kind is preserved so a future
// allocator-aware collaborator has somewhere to report into.
var ErrAllocation = errors.New("ERR out of memory")

// parseCount parses a command's count argument: signed 64-bit
// decimal. Range errors map to ErrOutOfRange, any other malformed
// input to ErrSyntax, per spec.md §6.
func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrOutOfRange
		}
		return 0, ErrSyntax
	}
	return n, nil
}
