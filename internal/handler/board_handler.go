package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"leadboard/internal/model"
	"leadboard/internal/notifier"
	"leadboard/internal/pipeline"
	"leadboard/internal/source"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// NotifierStats exposes delivery counters of the transition notifier.
type NotifierStats interface {
	Stats() notifier.Stats
}

type invalidator interface {
	Invalidate(ctx context.Context) error
}

type BoardHandler struct {
	pipeline *pipeline.Pipeline
	source   source.Source
	stats    NotifierStats
	logger   *log.Logger
}

func NewBoardHandler(p *pipeline.Pipeline, src source.Source, stats NotifierStats, logger *log.Logger) *BoardHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardHandler{pipeline: p, source: src, stats: stats, logger: logger}
}

type ColumnResponse struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Stage int          `json:"stage"`
	Leads []model.Lead `json:"leads"`
}

type BoardResponse struct {
	Version uint64           `json:"version"`
	Total   int              `json:"total"`
	Columns []ColumnResponse `json:"columns"`
}

type DragResponse struct {
	Moved     bool        `json:"moved"`
	Reordered bool        `json:"reordered"`
	Lead      *model.Lead `json:"lead,omitempty"`
	From      string      `json:"from,omitempty"`
	To        string      `json:"to,omitempty"`
	Notified  int         `json:"notified"`
}

type LocateResponse struct {
	LeadID int64  `json:"lead_id"`
	Column string `json:"column"`
	Stage  int    `json:"stage"`
	Index  int    `json:"index"`
}

type ReloadResponse struct {
	Total   int            `json:"total"`
	Columns map[string]int `json:"columns"`
}

func columnResponse(b pipeline.Board, s model.Stage) ColumnResponse {
	return ColumnResponse{
		ID:    s.ColumnID(),
		Title: s.ColumnTitle(),
		Stage: int(s),
		Leads: b.Column(s),
	}
}

// GetBoard godoc
// @Summary      Board snapshot
// @Tags         Board
// @Produce      json
// @Success      200  {object}  BoardResponse
// @Router       /board [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	b, version := h.pipeline.Store().Snapshot()

	resp := BoardResponse{Version: version, Total: b.Total()}
	for _, s := range model.Stages {
		resp.Columns = append(resp.Columns, columnResponse(b, s))
	}
	c.JSON(http.StatusOK, resp)
}

// GetColumn godoc
// @Summary      Single column by gesture id
// @Tags         Board
// @Produce      json
// @Param        column  path  string  true  "Column id"
// @Success      200  {object}  ColumnResponse
// @Failure      404  {object}  map[string]string
// @Router       /board/columns/{column} [get]
func (h *BoardHandler) GetColumn(c *gin.Context) {
	s, ok := model.StageForColumn(c.Param("column"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}
	c.JSON(http.StatusOK, columnResponse(h.pipeline.Store().Board(), s))
}

// LocateLead godoc
// @Summary      Column and position of a lead on the board
// @Tags         Board
// @Produce      json
// @Param        id  path  int  true  "Lead ID"
// @Success      200  {object}  LocateResponse
// @Failure      404  {object}  map[string]string
// @Router       /board/leads/{id} [get]
func (h *BoardHandler) LocateLead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID"})
		return
	}
	s, idx, ok := h.pipeline.Store().Board().Locate(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not on board"})
		return
	}
	c.JSON(http.StatusOK, LocateResponse{LeadID: id, Column: s.ColumnID(), Stage: int(s), Index: idx})
}

// Drag godoc
// @Summary      Apply a finished drag gesture
// @Tags         Board
// @Accept       json
// @Produce      json
// @Param        gesture  body  pipeline.DragEvent  true  "Drag gesture"
// @Success      200  {object}  DragResponse
// @Failure      400  {object}  map[string]string
// @Router       /board/drag [post]
func (h *BoardHandler) Drag(c *gin.Context) {
	var ev pipeline.DragEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	out, err := h.pipeline.Drag(ev)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrUnknownColumn),
			errors.Is(err, pipeline.ErrUnknownStage),
			errors.Is(err, pipeline.ErrIndexOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.WithError(err).Error("drag rejected")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply move"})
		}
		return
	}
	if !out.Applied {
		c.JSON(http.StatusOK, DragResponse{})
		return
	}

	res := out.Result
	c.JSON(http.StatusOK, DragResponse{
		Moved:     true,
		Reordered: !res.StageChanged(),
		Lead:      &res.Lead,
		From:      res.From.ColumnID(),
		To:        res.To.ColumnID(),
		Notified:  out.Notified,
	})
}

// Reload godoc
// @Summary      Refetch leads and rebuild the board
// @Tags         Board
// @Produce      json
// @Success      200  {object}  ReloadResponse
// @Router       /board/reload [post]
func (h *BoardHandler) Reload(c *gin.Context) {
	ctx := c.Request.Context()
	if inv, ok := h.source.(invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			h.logger.WithError(err).Warn("lead cache invalidation failed")
		}
	}

	h.pipeline.Load(source.Load(ctx, h.source, h.logger))

	b := h.pipeline.Store().Board()
	resp := ReloadResponse{Total: b.Total(), Columns: make(map[string]int, model.StageCount)}
	for _, s := range model.Stages {
		resp.Columns[s.ColumnID()] = b.Len(s)
	}
	c.JSON(http.StatusOK, resp)
}

// NotifierStats godoc
// @Summary      Stage update delivery counters
// @Tags         Board
// @Produce      json
// @Success      200  {object}  notifier.Stats
// @Router       /board/notifier [get]
func (h *BoardHandler) NotifierStats(c *gin.Context) {
	if h.stats == nil {
		c.JSON(http.StatusOK, notifier.Stats{})
		return
	}
	c.JSON(http.StatusOK, h.stats.Stats())
}
