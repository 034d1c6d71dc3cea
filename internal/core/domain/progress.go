package domain

import "time"

// ImportStage is the current stage of the one-time bootstrap pipeline.
type ImportStage string

const (
	// StageIdle means the pipeline has not started.
	StageIdle ImportStage = "idle"

	// StageDownloading means the archive download is in progress.
	StageDownloading ImportStage = "downloading"

	// StageExtracting means the nested archive is being unpacked.
	StageExtracting ImportStage = "extracting"

	// StageImporting means guide files are being parsed and stored.
	StageImporting ImportStage = "importing"

	// StageComplete means the library is populated. Terminal.
	StageComplete ImportStage = "complete"

	// StageError means the pipeline failed. Terminal for this process;
	// an operator restarts to retry.
	StageError ImportStage = "error"
)

// Terminal reports whether the stage is an end state.
func (s ImportStage) Terminal() bool {
	return s == StageComplete || s == StageError
}

// ImportStatus is a snapshot of bootstrap pipeline progress, published to
// status observers on every stage or progress change.
type ImportStatus struct {
	// Stage is the current pipeline stage.
	Stage ImportStage

	// Progress is overall pipeline progress, 0-100. Non-decreasing
	// within a run.
	Progress float64

	// Message is a human-readable description of current activity.
	Message string

	// GuideCount is the running number of guides committed.
	GuideCount int

	// GameCount is the running number of games created.
	GameCount int

	// StartedAt is when the pipeline began. Zero if it never ran.
	StartedAt time.Time

	// Err is the failure description when Stage is StageError.
	Err string
}
