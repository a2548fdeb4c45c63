package componentbuilder

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// KeyGenerator hands out key props, implementations must be safe for
// concurrent use and never return the same key twice within a process
type KeyGenerator interface {
	NextKey() string
}

type counterKeys struct {
	prefix string
	next   *uint64
}

// all counter key generators share one sequence, so keys from different
// generators with the same prefix can not collide
var keySequence uint64

// NewCounterKeys returns keys like "key-1", "key-2" drawn from a process wide sequence
func NewCounterKeys(prefix string) KeyGenerator {
	return &counterKeys{
		prefix: prefix,
		next:   &keySequence,
	}
}

func (ck *counterKeys) NextKey() string {
	return ck.prefix + "-" + strconv.FormatUint(atomic.AddUint64(ck.next, 1), 10)
}

type uuidKeys struct{}

// NewUUIDKeys returns random keys based on version 7 uuids
func NewUUIDKeys() KeyGenerator {
	return uuidKeys{}
}

func (uuidKeys) NextKey() string {
	id, errNewV7 := uuid.NewV7()
	if errNewV7 != nil {
		// the clock or the random source failed, v4 only needs randomness
		return "key-" + uuid.NewString()
	}
	return "key-" + id.String()
}

// DefaultKeys is used by builders without an explicit key generator
var DefaultKeys = NewCounterKeys("key")
