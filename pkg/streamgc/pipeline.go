package streamgc

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Pipeline is the whole-pipeline context the serialization guard checks
// against. It owns the checkpoint-in-progress flag: registry state may
// only be serialized while a deliberate pipeline-wide checkpoint holds
// the lock and has the flag raised.
type Pipeline struct {
	id string

	// mu serializes whole-pipeline checkpoint operations. The flag is
	// read separately (atomically) so the guard can consult it from
	// inside the locked section.
	mu            sync.Mutex
	checkpointing atomic.Bool
}

// NewPipeline creates a pipeline context with a fresh ID.
func NewPipeline() *Pipeline {
	return &Pipeline{id: uuid.NewString()}
}

// ID returns the pipeline's unique identifier.
func (p *Pipeline) ID() string {
	return p.id
}

// Checkpointing reports whether a pipeline-wide checkpoint is in
// progress.
func (p *Pipeline) Checkpointing() bool {
	return p.checkpointing.Load()
}

// WithCheckpointLock runs fn as a pipeline-wide checkpoint operation:
// the pipeline lock is held and the checkpoint-in-progress flag raised
// for the duration. Registry serialization must happen inside fn.
func (p *Pipeline) WithCheckpointLock(fn func() error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.checkpointing.Store(true)
	defer p.checkpointing.Store(false)

	return fn()
}
