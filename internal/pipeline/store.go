package pipeline

import (
	"sync"

	"leadboard/internal/model"
)

// Store owns the current Board. Moves are serialized; readers get snapshots.
type Store struct {
	mu      sync.RWMutex
	board   Board
	version uint64
}

func NewStore() *Store {
	b, _ := NewBoard(nil)
	return &Store{board: b}
}

// Initialize replaces the board with a fresh partition of batch and returns
// the leads that could not be placed.
func (s *Store) Initialize(batch []model.Lead) []model.Lead {
	b, dropped := NewBoard(batch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b
	s.version++
	return dropped
}

// Move applies m and keeps the resulting board only if it still satisfies the
// partition invariant.
func (s *Store) Move(m Move) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, res, err := s.board.Move(m)
	if err != nil {
		return MoveResult{}, err
	}
	if err := next.Validate(); err != nil {
		return MoveResult{}, err
	}
	s.board = next
	s.version++
	return res, nil
}

func (s *Store) Board() Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Snapshot returns the board together with the version it belongs to.
func (s *Store) Snapshot() (Board, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board, s.version
}

// Version increases on every successful Initialize or Move.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
