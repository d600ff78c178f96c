package model

import (
	"errors"
	"time"
)

// Video represents a catalog entry. VideoURL and ThumbnailURL point at
// externally hosted assets; the API never stores media itself.
type Video struct {
	ID           string
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	Category     string
	Duration     string
	Trending     bool
	Views        int64
	ReleasedAt   string
}

// WatchedVideo is a video resolved from a watch-history pointer,
// annotated with when the user last watched it.
type WatchedVideo struct {
	Video
	WatchedAt time.Time
}

var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrNegativeViews = errors.New("views cannot be negative")
)

// Validate checks invariants for a video about to be persisted.
func (v *Video) Validate() error {
	if v.Title == "" {
		return ErrEmptyTitle
	}
	if v.Views < 0 {
		return ErrNegativeViews
	}
	return nil
}
