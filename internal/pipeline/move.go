package pipeline

import "leadboard/internal/model"

// Move addresses a lead by column and position and names where it should go.
type Move struct {
	From      model.Stage
	FromIndex int
	To        model.Stage
	ToIndex   int
}

// MoveResult describes an applied move. ToIndex is the position actually used
// after clamping.
type MoveResult struct {
	Lead      model.Lead
	From      model.Stage
	To        model.Stage
	FromIndex int
	ToIndex   int
	Effects   []Effect
}

// StageChanged reports whether the move crossed columns.
func (r MoveResult) StageChanged() bool {
	return r.From != r.To
}
