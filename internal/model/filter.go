package model

import (
	"fmt"
	"net/url"
	"strings"
)

// ReportFilter holds the optional report criteria. Empty fields do not
// constrain the result.
type ReportFilter struct {
	HotelCode      string `json:"hotel_code,omitempty"`
	DepartmentCode string `json:"department_code,omitempty"`
	Status         Status `json:"status,omitempty"`
}

// Empty reports whether no criterion is set.
func (f ReportFilter) Empty() bool {
	return strings.TrimSpace(f.HotelCode) == "" &&
		strings.TrimSpace(f.DepartmentCode) == "" &&
		strings.TrimSpace(string(f.Status)) == ""
}

// Query encodes the non-empty criteria. It fails with ErrUserInput when the
// filter is empty.
func (f ReportFilter) Query() (url.Values, error) {
	if f.Empty() {
		return nil, fmt.Errorf("%w: at least one of hotel_code, department_code or status is required", ErrUserInput)
	}
	q := url.Values{}
	if v := strings.TrimSpace(f.HotelCode); v != "" {
		q.Set("hotel_code", v)
	}
	if v := strings.TrimSpace(f.DepartmentCode); v != "" {
		q.Set("department_code", v)
	}
	if v := strings.TrimSpace(string(f.Status)); v != "" {
		q.Set("status", v)
	}
	return q, nil
}

// Match reports whether it satisfies every non-empty criterion.
func (f ReportFilter) Match(it Item) bool {
	if v := strings.TrimSpace(f.HotelCode); v != "" && it.HotelCode != v {
		return false
	}
	if v := strings.TrimSpace(f.DepartmentCode); v != "" && it.DepartmentCode != v {
		return false
	}
	if v := strings.TrimSpace(string(f.Status)); v != "" && string(it.Status) != v {
		return false
	}
	return true
}

// FilterFromQuery is the inverse of Query.
func FilterFromQuery(q url.Values) ReportFilter {
	return ReportFilter{
		HotelCode:      q.Get("hotel_code"),
		DepartmentCode: q.Get("department_code"),
		Status:         Status(q.Get("status")),
	}
}
