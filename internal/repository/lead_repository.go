package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leadboard/internal/model"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// FetchLeads returns every lead in fetch order
func (r *LeadRepository) FetchLeads(ctx context.Context) ([]model.Lead, error) {
	var leads []model.Lead
	if err := r.db.WithContext(ctx).Order("id").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// GetByID retrieves a lead by its ID
func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*model.Lead, error) {
	var lead model.Lead
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// WriteStage stores the new stage of a lead and records the transition
func (r *LeadRepository) WriteStage(ctx context.Context, u model.StageUpdate) error {
	if !u.Stage.Valid() {
		return ErrInvalidStage
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lead model.Lead
		// Блокируем строку, чтобы параллельные переводы видели актуальную стадию
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", u.LeadID).First(&lead).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeadNotFound
			}
			return err
		}

		// Повторный перевод в ту же стадию не пишем в историю
		if lead.Stage == u.Stage {
			return nil
		}

		if err := tx.Model(&model.Lead{}).
			Where("id = ?", u.LeadID).
			Update("leads_status", u.Stage).Error; err != nil {
			return err
		}

		transition := model.StageTransition{
			ID:        uuid.New(),
			LeadID:    u.LeadID,
			FromStage: lead.Stage,
			ToStage:   u.Stage,
			UserID:    u.UserID,
		}
		return tx.Omit("Lead").Create(&transition).Error
	})
}
