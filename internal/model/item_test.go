package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() Item {
	return Item{
		HotelCode:      "HO",
		DepartmentCode: "IT",
		AssetName:      "Dell Latitude 5420",
		AssetType:      AssetTypeHardware,
		Category:       "Laptop",
		Status:         StatusFixed,
		BrandModel:     "Dell / Latitude",
		SerialNumber:   "SN-1",
	}
}

func TestDeriveBarcode(t *testing.T) {
	tests := []struct {
		hotel, dept, name string
		want              string
	}{
		{"HO", "IT", "Dell Latitude 5420", "HOITDELLLATITUDE5420001"},
		{"AS1", "FO", "  front\tdesk pc ", "AS1FOFRONTDESKPC001"},
		{"YB3", "ENG", "ups", "YB3ENGUPS001"},
	}
	for _, tt := range tests {
		got := DeriveBarcode(tt.hotel, tt.dept, tt.name)
		assert.Equal(t, tt.want, got, "DeriveBarcode(%q, %q, %q)", tt.hotel, tt.dept, tt.name)
		// Deterministic.
		assert.Equal(t, got, DeriveBarcode(tt.hotel, tt.dept, tt.name))
	}
}

func TestValidCategory(t *testing.T) {
	tests := []struct {
		assetType AssetType
		category  string
		want      bool
	}{
		{AssetTypeHardware, "Laptop", true},
		{AssetTypeHardware, "MS Office", false},
		{AssetTypeHardware, "Domain", false},
		{AssetTypeSoftware, "Antivirus", true},
		{AssetTypeSoftware, "Router", false},
		{AssetTypeVirtual, "Cloud", true},
		{AssetTypeVirtual, "Laptop", false},
		{"Furniture", "Chair", false},
	}
	for _, tt := range tests {
		got := ValidCategory(tt.assetType, tt.category)
		if got != tt.want {
			t.Errorf("ValidCategory(%q, %q) = %v, want %v", tt.assetType, tt.category, got, tt.want)
		}
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := AssetTypeVirtual.Categories()
	require.NotEmpty(t, cats)
	cats[0] = "Mutated"
	assert.True(t, ValidCategory(AssetTypeVirtual, "Domain"))
	assert.Nil(t, AssetType("unknown").Categories())
}

func TestItemValidate(t *testing.T) {
	it := validItem()
	require.NoError(t, it.Validate())

	tests := []struct {
		name   string
		mutate func(*Item)
		want   string
	}{
		{"missing hotel", func(i *Item) { i.HotelCode = "" }, "hotel_code required"},
		{"missing name", func(i *Item) { i.AssetName = "  " }, "asset_name required"},
		{"missing status", func(i *Item) { i.Status = "" }, "status required"},
		{"unknown hotel", func(i *Item) { i.HotelCode = "XX" }, `unknown hotel_code "XX"`},
		{"unknown status", func(i *Item) { i.Status = "Lost" }, `unknown status "Lost"`},
		{"unknown asset type", func(i *Item) { i.AssetType = "Furniture" }, `unknown asset_type "Furniture"`},
		{"hardware with software category", func(i *Item) { i.Category = "MS Office" }, "not allowed for asset_type Hardware"},
		{"hardware with virtual category", func(i *Item) { i.Category = "Website" }, "not allowed for asset_type Hardware"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := validItem()
			tt.mutate(&it)
			err := it.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnumValid(t *testing.T) {
	for _, at := range AssetTypes() {
		assert.True(t, at.Valid(), "asset type %q", at)
	}
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, Status("Fixed").Valid())
}
