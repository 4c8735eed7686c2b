package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/erazemk/popis/internal/model"
)

// ReportQuery runs filtered report queries.
type ReportQuery struct {
	Client *Client
}

// Report is the result of one report query.
type Report struct {
	Filter model.ReportFilter
	Items  []model.Item
}

// CanExport reports whether the result can be exported.
func (r *Report) CanExport() bool {
	return len(r.Items) > 0
}

// IDs returns the IDs of the report's items in order.
func (r *Report) IDs() []int64 {
	ids := make([]int64, len(r.Items))
	for i, it := range r.Items {
		ids[i] = it.ID
	}
	return ids
}

// Query returns the items matching every criterion of filter. An empty
// filter fails with model.ErrUserInput before any request is made.
func (q *ReportQuery) Query(ctx context.Context, filter model.ReportFilter) ([]model.Item, error) {
	values, err := filter.Query()
	if err != nil {
		return nil, err
	}
	req, _ := jsonRequest(http.MethodGet, "/items/report?"+values.Encode(), true, nil)
	items := []model.Item{}
	if _, err := q.Client.do(ctx, req, &items); err != nil {
		return nil, fmt.Errorf("querying report: %w", err)
	}
	return items, nil
}

// Preview runs Query and wraps the result.
func (q *ReportQuery) Preview(ctx context.Context, filter model.ReportFilter) (*Report, error) {
	items, err := q.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Report{Filter: filter, Items: items}, nil
}
