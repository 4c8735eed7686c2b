package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/erazemk/popis/internal/model"
)

type exportRequest struct {
	IDs []int64 `json:"ids"`
}

// ExportReport asks the API to render the given items as CSV and returns
// the raw response body with its content type.
func (c *Client) ExportReport(ctx context.Context, ids []int64) ([]byte, string, error) {
	req, err := jsonRequest(http.MethodPost, "/items/export-report", true, exportRequest{IDs: ids})
	if err != nil {
		return nil, "", err
	}
	req.accept = "text/csv"
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("exporting report: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading export: %w", model.ErrNetwork, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
