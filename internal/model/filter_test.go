package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFilterQuery(t *testing.T) {
	_, err := ReportFilter{}.Query()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserInput))

	_, err = ReportFilter{HotelCode: "  ", DepartmentCode: "\t"}.Query()
	assert.True(t, errors.Is(err, ErrUserInput), "whitespace-only filter is empty")

	q, err := ReportFilter{HotelCode: "HO"}.Query()
	require.NoError(t, err)
	assert.Equal(t, "hotel_code=HO", q.Encode())

	q, err = ReportFilter{HotelCode: "HO", DepartmentCode: "IT", Status: StatusLeased}.Query()
	require.NoError(t, err)
	assert.Len(t, q, 3)
	assert.Equal(t, "HO", q.Get("hotel_code"))
	assert.Equal(t, "IT", q.Get("department_code"))
	assert.Equal(t, "Leased Asset", q.Get("status"))
}

func TestReportFilterMatch(t *testing.T) {
	it := Item{HotelCode: "HO", DepartmentCode: "IT", Status: StatusFixed}

	assert.True(t, ReportFilter{HotelCode: "HO"}.Match(it))
	assert.True(t, ReportFilter{HotelCode: "HO", Status: StatusFixed}.Match(it))
	assert.False(t, ReportFilter{HotelCode: "HO", Status: StatusDisposal}.Match(it))
	assert.False(t, ReportFilter{DepartmentCode: "HR"}.Match(it))
}

func TestFilterFromQuery(t *testing.T) {
	f := ReportFilter{HotelCode: "AS2", Status: StatusDisposal}
	q, err := f.Query()
	require.NoError(t, err)
	assert.Equal(t, f, FilterFromQuery(q))
}
