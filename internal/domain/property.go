package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PropertyID is the backend's opaque listing identifier. The wire form may be
// a JSON number or a JSON string; both decode to the same value.
type PropertyID string

func (id *PropertyID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = PropertyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("property id: %w", err)
	}
	*id = PropertyID(n.String())
	return nil
}

func (id PropertyID) String() string { return string(id) }

type ImageRef struct {
	URL string `json:"image_url"`
}

// PropertyRecord is the read-only copy of a listing held for the lifetime of
// the screen that fetched it.
type PropertyRecord struct {
	ID          PropertyID `json:"property_id"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	PostalCode  string     `json:"postal_code"`
	Country     string     `json:"country"`
	Bedrooms    float64    `json:"bedrooms"`
	Bathrooms   float64    `json:"bathrooms"`
	Area        float64    `json:"area"`
	LotSize     float64    `json:"lot_size"`
	YearBuilt   int        `json:"year_built"`
	HOAFee      float64    `json:"hoa_fee"`
	Taxes       float64    `json:"taxes"`
	Parking     []string   `json:"parking"`
	Utilities   []string   `json:"utilities"`
	Features    []string   `json:"property_features"`
	Images      []ImageRef `json:"images"`
}

// ImageCount is N for the gallery over this record.
func (p PropertyRecord) ImageCount() int { return len(p.Images) }

// ListingSummary carries the scalars a caller already knows about a listing
// (from the search result that linked to it) and hands to the detail view.
type ListingSummary struct {
	Price         float64
	ForSale       bool
	AvailableFrom time.Time
}

// FormatNumber renders a numeric listing field the way the backend sent it: no trailing
// zeros, no exponent.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
