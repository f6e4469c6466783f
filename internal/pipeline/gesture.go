package pipeline

import (
	"fmt"

	"leadboard/internal/model"
)

// DragEvent is a finished drag gesture as reported by the board UI. A nil
// DestIndex or empty DestColumnID means the card was dropped outside any column.
type DragEvent struct {
	SourceColumnID string `json:"sourceColumnId" binding:"required"`
	SourceIndex    int    `json:"sourceIndex" binding:"min=0"`
	DestColumnID   string `json:"destColumnId"`
	DestIndex      *int   `json:"destIndex"`
}

// HasDestination reports whether the gesture ended over a column.
func (e DragEvent) HasDestination() bool {
	return e.DestColumnID != "" && e.DestIndex != nil
}

// Move translates the gesture. ok is false for gestures without a destination,
// which must be ignored.
func (e DragEvent) Move() (m Move, ok bool, err error) {
	if !e.HasDestination() {
		return Move{}, false, nil
	}
	from, found := model.StageForColumn(e.SourceColumnID)
	if !found {
		return Move{}, false, fmt.Errorf("%w: %q", ErrUnknownColumn, e.SourceColumnID)
	}
	to, found := model.StageForColumn(e.DestColumnID)
	if !found {
		return Move{}, false, fmt.Errorf("%w: %q", ErrUnknownColumn, e.DestColumnID)
	}
	return Move{From: from, FromIndex: e.SourceIndex, To: to, ToIndex: *e.DestIndex}, true, nil
}
