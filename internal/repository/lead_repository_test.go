package repository_test

import (
	"context"
	"testing"
	"time"

	"leadboard/internal/model"
	"leadboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

var leadColumns = []string{"id", "leads_status", "ad_name", "full_name", "phone_number", "email", "city", "platform", "created_time", "updated_at"}

func TestLeadRepository_FetchLeads(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLeadRepository(gormDB)
	created := "2024-05-01T09:30:00+0000"
	updated := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "leads" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(leadColumns).
			AddRow(1, 0, "Spring promo", "Ann Lee", "+100", "ann@example.com", "Austin", "ig", created, updated).
			AddRow(2, 3, "Spring promo", "Bob Ray", "+200", "bob@example.com", "Boston", "fb", created, updated))

	// Act
	leads, err := repo.FetchLeads(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, int64(1), leads[0].ID)
	assert.Equal(t, model.StageNew, leads[0].Stage)
	assert.Equal(t, "Ann Lee", leads[0].FullName)
	assert.Equal(t, "2024-05-01T09:30:00+0000", leads[0].CreatedTime)
	assert.Equal(t, model.StageContractDiscussion, leads[1].Stage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLeadRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1 ORDER BY "leads"."id" LIMIT`).
		WillReturnRows(sqlmock.NewRows(leadColumns))

	// Act
	lead, err := repo.GetByID(context.Background(), 99)

	// Assert
	assert.ErrorIs(t, err, repository.ErrLeadNotFound)
	assert.Nil(t, lead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_WriteStage(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLeadRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "leads_status"}).AddRow(7, 1))
	mock.ExpectExec(`UPDATE "leads" SET "leads_status"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "stage_transitions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	// Act
	err := repo.WriteStage(context.Background(), model.StageUpdate{LeadID: 7, Stage: model.StageDecisionMaking, UserID: "1"})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_WriteStage_SameStage(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLeadRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "leads_status"}).AddRow(7, 2))
	mock.ExpectCommit()

	// Act
	err := repo.WriteStage(context.Background(), model.StageUpdate{LeadID: 7, Stage: model.StageDecisionMaking, UserID: "1"})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_WriteStage_UnknownLead(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLeadRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(leadColumns))
	mock.ExpectRollback()

	// Act
	err := repo.WriteStage(context.Background(), model.StageUpdate{LeadID: 404, Stage: model.StageDiscussion})

	// Assert
	assert.ErrorIs(t, err, repository.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_WriteStage_InvalidStage(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLeadRepository(gormDB)

	err := repo.WriteStage(context.Background(), model.StageUpdate{LeadID: 1, Stage: model.Stage(8)})

	assert.ErrorIs(t, err, repository.ErrInvalidStage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionRepository_ListByLead(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewTransitionRepository(gormDB)
	id := uuid.New()
	at := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "stage_transitions" WHERE lead_id = \$1 ORDER BY created_at`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lead_id", "from_stage", "to_stage", "user_id", "created_at"}).
			AddRow(id.String(), 7, 0, 1, "1", at))

	// Act
	transitions, err := repo.ListByLead(context.Background(), 7)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, transitions, 1)
	assert.Equal(t, id, transitions[0].ID)
	assert.Equal(t, model.StageDiscussion, transitions[0].ToStage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
