// Package pipeline holds the lead board state machine: a pure Board value with
// a Move transform, the Store that owns the current Board, translation of drag
// gestures into moves, and the executor that turns move effects into stage
// notifications.
package pipeline

import (
	"errors"
	"fmt"

	"leadboard/internal/model"
)

var (
	ErrUnknownStage    = errors.New("unknown stage")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvariant       = errors.New("board invariant violated")
)

// Board is an immutable snapshot of the four pipeline columns. Move never
// modifies the receiver; it returns a new Board sharing the untouched columns.
type Board struct {
	columns map[model.Stage][]model.Lead
}

// NewBoard partitions batch by stage, keeping the batch order inside each
// column. Leads with a stage outside the pipeline are returned as dropped.
func NewBoard(batch []model.Lead) (Board, []model.Lead) {
	b := Board{columns: make(map[model.Stage][]model.Lead, model.StageCount)}
	var dropped []model.Lead
	for _, lead := range batch {
		if !lead.Stage.Valid() {
			dropped = append(dropped, lead)
			continue
		}
		b.columns[lead.Stage] = append(b.columns[lead.Stage], lead)
	}
	return b, dropped
}

// Column returns a copy of the leads in stage s, in display order.
func (b Board) Column(s model.Stage) []model.Lead {
	col := b.columns[s]
	out := make([]model.Lead, len(col))
	copy(out, col)
	return out
}

func (b Board) Len(s model.Stage) int {
	return len(b.columns[s])
}

// Total is the number of leads on the board.
func (b Board) Total() int {
	n := 0
	for _, col := range b.columns {
		n += len(col)
	}
	return n
}

// Locate finds the column and position of a lead.
func (b Board) Locate(leadID int64) (model.Stage, int, bool) {
	for _, s := range model.Stages {
		for i, lead := range b.columns[s] {
			if lead.ID == leadID {
				return s, i, true
			}
		}
	}
	return 0, 0, false
}

// Move relocates the lead at m.FromIndex of column m.From to m.ToIndex of
// column m.To. ToIndex is clamped to the valid insertion range of the
// destination after the lead has been removed from the source.
func (b Board) Move(m Move) (Board, MoveResult, error) {
	if !m.From.Valid() {
		return b, MoveResult{}, fmt.Errorf("%w: source %d", ErrUnknownStage, m.From)
	}
	if !m.To.Valid() {
		return b, MoveResult{}, fmt.Errorf("%w: destination %d", ErrUnknownStage, m.To)
	}
	src := b.columns[m.From]
	if m.FromIndex < 0 || m.FromIndex >= len(src) {
		return b, MoveResult{}, fmt.Errorf("%w: %s[%d], column has %d leads",
			ErrIndexOutOfRange, m.From.ColumnID(), m.FromIndex, len(src))
	}

	next := b.clone()
	lead := src[m.FromIndex]
	rest := without(src, m.FromIndex)

	if m.From == m.To {
		pos := clamp(m.ToIndex, len(rest))
		next.columns[m.From] = inserted(rest, pos, lead)
		return next, MoveResult{
			Lead:      lead,
			From:      m.From,
			To:        m.To,
			FromIndex: m.FromIndex,
			ToIndex:   pos,
		}, nil
	}

	lead.Stage = m.To
	dst := b.columns[m.To]
	pos := clamp(m.ToIndex, len(dst))
	next.columns[m.From] = rest
	next.columns[m.To] = inserted(dst, pos, lead)

	return next, MoveResult{
		Lead:      lead,
		From:      m.From,
		To:        m.To,
		FromIndex: m.FromIndex,
		ToIndex:   pos,
		Effects:   []Effect{newEffect(lead.ID, m.From, m.To)},
	}, nil
}

// Validate checks the partition invariant: every key is a pipeline stage,
// every lead sits in the column of its own stage and no id appears twice.
func (b Board) Validate() error {
	seen := make(map[int64]model.Stage, b.Total())
	for s, col := range b.columns {
		if !s.Valid() {
			return fmt.Errorf("%w: column for %s", ErrInvariant, s)
		}
		for i, lead := range col {
			if lead.Stage != s {
				return fmt.Errorf("%w: lead %d at %s[%d] has stage %s", ErrInvariant, lead.ID, s.ColumnID(), i, lead.Stage)
			}
			if prev, dup := seen[lead.ID]; dup {
				return fmt.Errorf("%w: lead %d in both %s and %s", ErrInvariant, lead.ID, prev.ColumnID(), s.ColumnID())
			}
			seen[lead.ID] = s
		}
	}
	return nil
}

func (b Board) clone() Board {
	c := Board{columns: make(map[model.Stage][]model.Lead, model.StageCount)}
	for s, col := range b.columns {
		c.columns[s] = col
	}
	return c
}

func without(s []model.Lead, i int) []model.Lead {
	out := make([]model.Lead, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func inserted(s []model.Lead, i int, lead model.Lead) []model.Lead {
	out := make([]model.Lead, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, lead)
	return append(out, s[i:]...)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
