package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"leadboard/internal/model"
	"leadboard/internal/repository"
	"leadboard/internal/source"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeadStore is the persistence side of the remote-store API.
type LeadStore interface {
	FetchLeads(ctx context.Context) ([]model.Lead, error)
	GetByID(ctx context.Context, id int64) (*model.Lead, error)
	WriteStage(ctx context.Context, u model.StageUpdate) error
}

type TransitionLister interface {
	ListByLead(ctx context.Context, leadID int64) ([]model.StageTransition, error)
}

type LeadHandler struct {
	leads       LeadStore
	transitions TransitionLister
}

func NewLeadHandler(leads LeadStore, transitions TransitionLister) *LeadHandler {
	return &LeadHandler{leads: leads, transitions: transitions}
}

type TransitionResponse struct {
	ID        uuid.UUID `json:"id"`
	LeadID    int64     `json:"lead_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	UserID    string    `json:"user_id"`
	CreatedAt string    `json:"created_at"`
}

// List godoc
// @Summary      Lead batch in the remote wire format
// @Tags         Leads
// @Produce      json
// @Success      200  {object}  source.Batch
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leads.FetchLeads(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leads"})
		return
	}
	if leads == nil {
		leads = []model.Lead{}
	}
	c.JSON(http.StatusOK, source.Batch{LeadsList: leads})
}

// UpdateStatus godoc
// @Summary      Persist a lead's stage
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        update  body  model.StageUpdate  true  "Stage update"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /leads/status [post]
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req model.StageUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.leads.WriteStage(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidStage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stage"})
		case errors.Is(err, repository.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead stage updated"})
}

// Transitions godoc
// @Summary      Stage change audit trail of a lead
// @Tags         Leads
// @Produce      json
// @Param        id  path  int  true  "Lead ID"
// @Success      200  {array}   TransitionResponse
// @Failure      404  {object}  map[string]string
// @Router       /leads/{id}/transitions [get]
func (h *LeadHandler) Transitions(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.leads.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lead"})
		return
	}

	rows, err := h.transitions.ListByLead(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transitions"})
		return
	}

	response := make([]TransitionResponse, len(rows))
	for i, t := range rows {
		response[i] = TransitionResponse{
			ID:        t.ID,
			LeadID:    t.LeadID,
			From:      t.FromStage.String(),
			To:        t.ToStage.String(),
			UserID:    t.UserID,
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, response)
}
