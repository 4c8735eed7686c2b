package model

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Item is a single inventory asset record as exchanged with the API.
type Item struct {
	ID             int64     `json:"id,omitempty"`
	HotelCode      string    `json:"hotel_code"`
	DepartmentCode string    `json:"department_code"`
	AssetName      string    `json:"asset_name"`
	AssetType      AssetType `json:"asset_type"`
	Category       string    `json:"category"`
	Status         Status    `json:"status"`
	BrandModel     string    `json:"brand_model,omitempty"`
	SerialNumber   string    `json:"serial_number,omitempty"`
	Barcode        string    `json:"barcode,omitempty"`
	Image          string    `json:"image,omitempty"`
}

// AssetType selects which category set an item may draw from.
type AssetType string

// Asset types.
const (
	AssetTypeHardware AssetType = "Hardware"
	AssetTypeSoftware AssetType = "Software"
	AssetTypeVirtual  AssetType = "Virtual"
)

// Status is the accounting status of an item.
type Status string

// Item statuses.
const (
	StatusFixed    Status = "Fixed Asset"
	StatusLeased   Status = "Leased Asset"
	StatusDisposal Status = "Disposal Asset"
)

// BarcodeSuffix is appended to every derived barcode.
const BarcodeSuffix = "001"

var categories = map[AssetType][]string{
	AssetTypeHardware: {
		"Laptop", "Tablet", "Mobile Phone", "Router", "Access Point", "Switch", "Camera",
		"DVR", "NVR", "Mouse", "Keyboard", "Keyboard Mouse", "WebCam", "UPS", "Server",
		"Rack", "Mic", "SoundCard", "Board", "MiniPC", "PC", "Monitor", "Cable",
		"Adapter", "Printer", "Trafo",
	},
	AssetTypeSoftware: {
		"Operating System", "MS Office", "AutoCad", "Antivirus", "Adobe Product", "Other",
	},
	AssetTypeVirtual: {"Domain", "Cloud", "Website"},
}

// HotelCodes lists the known hotel codes.
var HotelCodes = []string{
	"HO", "AS1", "AS2", "AS3", "AS4", "AS5", "AS6",
	"ST1", "JU1", "JU2", "YB1", "YB2", "YB3",
}

// DepartmentCodes lists the known department codes.
var DepartmentCodes = []string{
	"AG", "HR", "IT", "MAR", "REV", "RES", "PUR",
	"SAL", "FO", "HK", "ENG", "BQT", "SEC",
}

// AssetTypes returns all asset types in display order.
func AssetTypes() []AssetType {
	return []AssetType{AssetTypeHardware, AssetTypeSoftware, AssetTypeVirtual}
}

// Statuses returns all item statuses in display order.
func Statuses() []Status {
	return []Status{StatusFixed, StatusLeased, StatusDisposal}
}

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	_, ok := categories[t]
	return ok
}

// Categories returns a copy of the categories legal for t, or nil for an
// unknown asset type.
func (t AssetType) Categories() []string {
	return slices.Clone(categories[t])
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(Statuses(), s)
}

// ValidCategory reports whether category belongs to the set of assetType.
func ValidCategory(assetType AssetType, category string) bool {
	return slices.Contains(categories[assetType], category)
}

// DeriveBarcode builds the asset identifier from the hotel code, department
// code and asset name. Whitespace is removed from the name and it is
// upper-cased.
func DeriveBarcode(hotelCode, departmentCode, assetName string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, assetName)
	return hotelCode + departmentCode + strings.ToUpper(name) + BarcodeSuffix
}

// Validate checks required fields and the asset type to category mapping.
// The returned error wraps ErrValidation and names every offending field.
func (it *Item) Validate() error {
	var problems []string

	required := []struct {
		field, value string
	}{
		{"hotel_code", it.HotelCode},
		{"department_code", it.DepartmentCode},
		{"asset_name", it.AssetName},
		{"asset_type", string(it.AssetType)},
		{"category", it.Category},
		{"status", string(it.Status)},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.field+" required")
		}
	}

	if it.HotelCode != "" && !slices.Contains(HotelCodes, it.HotelCode) {
		problems = append(problems, fmt.Sprintf("unknown hotel_code %q", it.HotelCode))
	}
	if it.DepartmentCode != "" && !slices.Contains(DepartmentCodes, it.DepartmentCode) {
		problems = append(problems, fmt.Sprintf("unknown department_code %q", it.DepartmentCode))
	}
	if it.Status != "" && !it.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", it.Status))
	}
	if it.AssetType != "" && !it.AssetType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown asset_type %q", it.AssetType))
	} else if it.AssetType != "" && it.Category != "" && !ValidCategory(it.AssetType, it.Category) {
		problems = append(problems, fmt.Sprintf("category %q not allowed for asset_type %s", it.Category, it.AssetType))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
