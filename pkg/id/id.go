package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out ULID strings. IDs created by the same Generator are
// strictly increasing, even within one millisecond.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	mono io.Reader
}

// NewGenerator returns a Generator stamping IDs with now(). A nil now uses
// the wall clock.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}

	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		now:  now,
		mono: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

// New returns the next ULID string.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.mono)
	if err != nil {
		// Only possible if the entropy source overflows within a single ms.
		panic(err)
	}
	return id.String()
}

var std = NewGenerator(nil)

// New returns a ULID from the package generator.
func New() string { return std.New() }
