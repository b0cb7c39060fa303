package pixely

import (
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Namer hands out scoping class names. Implementations must be safe for
// concurrent use.
type Namer interface {
	Name() string
}

// RandomNamer produces names like "pixely-4821", drawn from 1..10000. Two
// renders into the same directory can collide; the odds are accepted.
type RandomNamer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomNamer returns a RandomNamer. The same seed yields the same names.
func NewRandomNamer(seed int64) *RandomNamer {
	return &RandomNamer{rnd: rand.New(rand.NewSource(seed))}
}

func (n *RandomNamer) Name() string {
	n.mu.Lock()
	v := n.rnd.Intn(10000) + 1
	n.mu.Unlock()
	return "pixely-" + strconv.Itoa(v)
}

// SequenceNamer produces Prefix-1, Prefix-2, ...
type SequenceNamer struct {
	Prefix string
	n      atomic.Uint64
}

func (n *SequenceNamer) Name() string {
	prefix := n.Prefix
	if prefix == "" {
		prefix = "pixely"
	}
	return prefix + "-" + strconv.FormatUint(n.n.Add(1), 10)
}

// StaticNamer always returns itself.
type StaticNamer string

func (n StaticNamer) Name() string {
	return string(n)
}

var defaultNamer Namer = NewRandomNamer(time.Now().UnixNano())
