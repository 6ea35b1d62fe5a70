package models

import "time"

// EntryState is the position of one archive entry in the extraction pipeline.
type EntryState string

const (
	EntryStatePending          EntryState = "PENDING"
	EntryStateSummarized       EntryState = "SUMMARIZED"
	EntryStateNoContent        EntryState = "NO_CONTENT"
	EntryStateContentExtracted EntryState = "CONTENT_EXTRACTED"
	EntryStatePathResolved     EntryState = "PATH_RESOLVED"
	EntryStateWritten          EntryState = "WRITTEN"
	EntryStateFailed           EntryState = "FAILED"
)

// IsTerminal reports whether no further transition is possible for the entry.
func (s EntryState) IsTerminal() bool {
	return s == EntryStateNoContent || s == EntryStateWritten || s == EntryStateFailed
}

// EntryOutcome records what happened to a single entry.
type EntryOutcome struct {
	Index int
	State EntryState
	Path  string // resolved destination, empty unless the path was resolved
	Bytes int64
	Err   error
}

// ExtractionSummary aggregates the outcomes of one extraction run.
type ExtractionSummary struct {
	OutputDir    string
	ListOnly     bool
	Processed    int
	Written      int
	NoContent    int
	Failed       int
	BytesWritten int64
	Duration     time.Duration
}

// Record folds a finished entry into the summary.
func (s *ExtractionSummary) Record(outcome EntryOutcome) {
	s.Processed++
	switch outcome.State {
	case EntryStateWritten:
		s.Written++
		s.BytesWritten += outcome.Bytes
	case EntryStateNoContent:
		s.NoContent++
	case EntryStateFailed:
		s.Failed++
	}
}

// HasFailures reports whether any entry ended in EntryStateFailed.
func (s *ExtractionSummary) HasFailures() bool {
	return s.Failed > 0
}
