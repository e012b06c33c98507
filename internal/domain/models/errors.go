package models

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrEmptyFilteredSet means no record matched the dashboard filters.
var ErrEmptyFilteredSet = errors.New("no trades match the selected filters")

// MissingFileError is returned when an input file does not exist.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

func (e *MissingFileError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return fs.ErrNotExist
}

// UnparseableRowError describes a row that was dropped.
type UnparseableRowError struct {
	Source string
	Line   int
	Field  string
	Value  string
}

func (e *UnparseableRowError) Error() string {
	return fmt.Sprintf("%s line %d: cannot parse %s %q", e.Source, e.Line, e.Field, e.Value)
}

// Drop reasons, used as metric labels and log fields.
const (
	ReasonBadTimestamp     = "unparseable_timestamp"
	ReasonBadNumber        = "unparseable_number"
	ReasonUnmatchedDate    = "unmatched_date"
	ReasonBadSentimentDate = "unparseable_sentiment_date"
	ReasonBadSentimentVal  = "unparseable_sentiment_value"
	ReasonUnknownBand      = "unknown_band"
	ReasonDuplicateDate    = "duplicate_sentiment_date"
)
