// Package source fetches the batch of leads the board is built from.
package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"leadboard/internal/model"
)

// Source returns every lead that should appear on the board, in fetch order.
type Source interface {
	FetchLeads(ctx context.Context) ([]model.Lead, error)
}

// Batch is the wire shape of the lead generator response.
type Batch struct {
	LeadsList []model.Lead `json:"leadsList"`
}

// HTTPSource reads the batch from the remote lead generator.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSource{url: url, client: client}
}

func (s *HTTPSource) FetchLeads(ctx context.Context) ([]model.Lead, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leads: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch leads from %s: unexpected status %d", s.url, resp.StatusCode)
	}

	var batch Batch
	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	// a response without leadsList is an empty batch
	return batch.LeadsList, nil
}

// Load fetches the batch once. Any failure is logged and yields an empty
// batch, so the board starts with four empty columns.
func Load(ctx context.Context, src Source, logger *log.Logger) []model.Lead {
	if logger == nil {
		logger = log.StandardLogger()
	}
	leads, err := src.FetchLeads(ctx)
	if err != nil {
		logger.WithError(err).WithField("source", fmt.Sprintf("%T", src)).Error("lead fetch failed, board starts empty")
		return nil
	}
	return leads
}
