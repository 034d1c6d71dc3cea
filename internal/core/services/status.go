package services

import (
	"sync"
	"time"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/logger"
)

// StatusBoard owns the bootstrap pipeline's status and fans snapshots out
// to subscribers. All mutation goes through the board so observers always
// see internally consistent snapshots, and overall progress never moves
// backwards within a run.
type StatusBoard struct {
	mu     sync.Mutex
	status domain.ImportStatus
	subs   map[int]func(domain.ImportStatus)
	next   int
}

// NewStatusBoard creates a board in the idle stage.
func NewStatusBoard() *StatusBoard {
	return &StatusBoard{
		status: domain.ImportStatus{Stage: domain.StageIdle},
		subs:   make(map[int]func(domain.ImportStatus)),
	}
}

// Status returns the current snapshot.
func (b *StatusBoard) Status() domain.ImportStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Subscribe registers fn to receive every future snapshot. The returned
// function unregisters it; calling it more than once is harmless.
func (b *StatusBoard) Subscribe(fn func(domain.ImportStatus)) (unsubscribe func()) {
	b.mu.Lock()
	token := b.next
	b.next++
	b.subs[token] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, token)
		b.mu.Unlock()
	}
}

// Start moves the board out of idle and stamps the run's start time.
func (b *StatusBoard) Start() {
	b.update(func(s *domain.ImportStatus) {
		s.StartedAt = time.Now().UTC()
	})
}

// SetStage advances the pipeline stage.
func (b *StatusBoard) SetStage(stage domain.ImportStage, message string) {
	b.update(func(s *domain.ImportStatus) {
		s.Stage = stage
		s.Message = message
	})
}

// SetProgress updates overall progress and the activity message. Progress
// below the current value is ignored.
func (b *StatusBoard) SetProgress(progress float64, message string) {
	b.update(func(s *domain.ImportStatus) {
		s.Progress = progress
		s.Message = message
	})
}

// SetCounts updates the running guide and game counters.
func (b *StatusBoard) SetCounts(guides, games int) {
	b.update(func(s *domain.ImportStatus) {
		s.GuideCount = guides
		s.GameCount = games
	})
}

// Complete marks the pipeline finished at full progress.
func (b *StatusBoard) Complete(message string) {
	b.update(func(s *domain.ImportStatus) {
		s.Stage = domain.StageComplete
		s.Progress = 100
		s.Message = message
		s.Err = ""
	})
}

// Fail marks the pipeline failed. Progress is left where it stopped.
func (b *StatusBoard) Fail(err error) {
	b.update(func(s *domain.ImportStatus) {
		s.Stage = domain.StageError
		s.Message = "initialization failed"
		s.Err = err.Error()
	})
}

// update applies a mutation under the lock and publishes the resulting
// snapshot to all subscribers.
func (b *StatusBoard) update(mutate func(*domain.ImportStatus)) {
	b.mu.Lock()
	before := b.status.Progress
	mutate(&b.status)
	if b.status.Progress < before {
		b.status.Progress = before
	}
	snapshot := b.status
	subs := make([]func(domain.ImportStatus), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		notify(fn, snapshot)
	}
}

// notify delivers one snapshot to one subscriber. A panicking subscriber
// must not take the pipeline down with it.
func notify(fn func(domain.ImportStatus), snapshot domain.ImportStatus) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("status subscriber panicked: %v", r)
		}
	}()
	fn(snapshot)
}
