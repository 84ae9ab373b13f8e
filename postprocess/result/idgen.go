package result

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out unique IDs for detected objects.  By default random
// UUIDs are used, a sequential generator gives predictable IDs which is
// useful when replaying recorded detections.
type IDGenerator struct {
	id     int64
	prefix string
	seq    bool
	sync.Mutex
}

// NewIDGenerator returns a generator of random UUID strings
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewSequentialIDGenerator returns a generator of incremental IDs in the
// form "<prefix>1", "<prefix>2", ...
func NewSequentialIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{
		prefix: prefix,
		seq:    true,
	}
}

// GetNext returns the next ID
func (id *IDGenerator) GetNext() string {

	if !id.seq {
		return uuid.NewString()
	}

	id.Lock()
	defer id.Unlock()
	id.id++

	return id.prefix + strconv.FormatInt(id.id, 10)
}
