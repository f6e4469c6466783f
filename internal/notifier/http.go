package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"leadboard/internal/model"
)

// StatusError is returned when the remote store answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stage update to %s: unexpected status %d", e.URL, e.StatusCode)
}

// HTTPWriter posts stage updates as JSON to the remote store.
type HTTPWriter struct {
	url    string
	client *http.Client
}

func NewHTTPWriter(url string, client *http.Client) *HTTPWriter {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPWriter{url: url, client: client}
}

func (w *HTTPWriter) WriteStage(ctx context.Context, u model.StageUpdate) error {
	body, err := sonic.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode stage update: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post stage update: %w", err)
	}
	defer resp.Body.Close()
	// response body is not part of the contract
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{URL: w.url, StatusCode: resp.StatusCode}
	}
	return nil
}
