package repository

import (
	"context"

	"gorm.io/gorm"

	"leadboard/internal/model"
)

type TransitionRepository struct {
	db *gorm.DB
}

func NewTransitionRepository(db *gorm.DB) *TransitionRepository {
	return &TransitionRepository{db: db}
}

// ListByLead returns the stage history of a lead, oldest first
func (r *TransitionRepository) ListByLead(ctx context.Context, leadID int64) ([]model.StageTransition, error) {
	var transitions []model.StageTransition
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at").
		Find(&transitions).Error
	return transitions, err
}
