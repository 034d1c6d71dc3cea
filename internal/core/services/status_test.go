package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

func TestStatusBoard_StartsIdle(t *testing.T) {
	b := NewStatusBoard()
	s := b.Status()
	assert.Equal(t, domain.StageIdle, s.Stage)
	assert.Zero(t, s.Progress)
	assert.True(t, s.StartedAt.IsZero())
}

func TestStatusBoard_SubscribersSeeEveryUpdate(t *testing.T) {
	b := NewStatusBoard()

	var seen []domain.ImportStatus
	unsubscribe := b.Subscribe(func(s domain.ImportStatus) {
		seen = append(seen, s)
	})

	b.SetStage(domain.StageDownloading, "downloading")
	b.SetProgress(10, "downloading (33%)")
	b.Complete("done")

	assert.Len(t, seen, 3)
	assert.Equal(t, domain.StageDownloading, seen[0].Stage)
	assert.Equal(t, 10.0, seen[1].Progress)
	assert.Equal(t, domain.StageComplete, seen[2].Stage)
	assert.Equal(t, 100.0, seen[2].Progress)

	unsubscribe()
	b.SetCounts(5, 1)
	assert.Len(t, seen, 3, "no updates after unsubscribe")
}

func TestStatusBoard_UnsubscribeTwiceIsHarmless(t *testing.T) {
	b := NewStatusBoard()
	unsubscribe := b.Subscribe(func(domain.ImportStatus) {})
	unsubscribe()
	unsubscribe()
	b.SetProgress(1, "x")
}

func TestStatusBoard_ProgressNeverDecreases(t *testing.T) {
	b := NewStatusBoard()
	b.SetProgress(40, "a")
	b.SetProgress(25, "stale update")

	s := b.Status()
	assert.Equal(t, 40.0, s.Progress)
	assert.Equal(t, "stale update", s.Message, "message still applies")
}

func TestStatusBoard_PanickingSubscriberIsIsolated(t *testing.T) {
	b := NewStatusBoard()

	b.Subscribe(func(domain.ImportStatus) { panic("broken observer") })
	calls := 0
	b.Subscribe(func(domain.ImportStatus) { calls++ })

	b.SetProgress(5, "x")
	b.SetProgress(10, "y")

	assert.Equal(t, 2, calls)
}

func TestStatusBoard_Fail(t *testing.T) {
	b := NewStatusBoard()
	b.SetProgress(42, "importing")
	b.Fail(errors.New("disk full"))

	s := b.Status()
	assert.Equal(t, domain.StageError, s.Stage)
	assert.Equal(t, "disk full", s.Err)
	assert.Equal(t, 42.0, s.Progress, "progress stays where it stopped")
	assert.True(t, s.Stage.Terminal())
}
