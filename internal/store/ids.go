package store

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// SequentialIDs yields "<prefix>1", "<prefix>2", ... and is safe for
// concurrent use.
type SequentialIDs struct {
	Prefix string
	n      atomic.Uint64
}

func (s *SequentialIDs) NewID() string {
	return s.Prefix + strconv.FormatUint(s.n.Add(1), 10)
}
