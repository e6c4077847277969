package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"listing_portal/internal/domain"
)

var validate = validator.New()

/********** lenient scalars **********/

// flexFloat accepts a JSON number, a numeric string ("1200.00", "8,5") or null.
// A comma is read as the decimal separator only when it is the sole separator
// and is not followed by exactly three digits; "1,200" and "1,250.00" are
// ambiguous and rejected.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		s, err := decimalComma(s)
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func decimalComma(s string) (string, error) {
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return s, nil
	}
	if strings.Count(s, ",") > 1 || strings.Contains(s, ".") || len(s)-i-1 == 3 {
		return "", fmt.Errorf("ambiguous number: %q", s)
	}
	return s[:i] + "." + s[i+1:], nil
}

// flexString accepts a JSON string, a number (postal codes) or null.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

/********** envelopes **********/

type wireImage struct {
	URL string `json:"image_url" validate:"required"`
}

type wireRecord struct {
	ID          domain.PropertyID `json:"property_id" validate:"required"`
	Description flexString        `json:"description"`
	Address     flexString        `json:"address"`
	City        flexString        `json:"city"`
	State       flexString        `json:"state"`
	PostalCode  flexString        `json:"postal_code"`
	Country     flexString        `json:"country"`
	Bedrooms    flexFloat         `json:"bedrooms"`
	Bathrooms   flexFloat         `json:"bathrooms"`
	Area        flexFloat         `json:"area"`
	LotSize     flexFloat         `json:"lot_size"`
	YearBuilt   flexFloat         `json:"year_built"`
	HOAFee      flexFloat         `json:"hoa_fee"`
	Taxes       flexFloat         `json:"taxes"`
	Parking     []string          `json:"parking"`
	Utilities   []string          `json:"utilities"`
	Features    []string          `json:"property_features"`
	Images      []wireImage       `json:"images" validate:"dive"`
}

// listEnvelope keeps Properties as a pointer so an absent field can be told
// apart from an explicit empty list; both map to an empty result.
type listEnvelope struct {
	Properties *[]wireRecord `json:"properties"`
}

type detailEnvelope struct {
	Property *wireRecord `json:"property"`
}

/********** mapping **********/

func (w wireRecord) toDomain() domain.PropertyRecord {
	imgs := make([]domain.ImageRef, 0, len(w.Images))
	for _, im := range w.Images {
		imgs = append(imgs, domain.ImageRef{URL: im.URL})
	}
	return domain.PropertyRecord{
		ID:          w.ID,
		Description: string(w.Description),
		Address:     string(w.Address),
		City:        string(w.City),
		State:       string(w.State),
		PostalCode:  string(w.PostalCode),
		Country:     string(w.Country),
		Bedrooms:    float64(w.Bedrooms),
		Bathrooms:   float64(w.Bathrooms),
		Area:        float64(w.Area),
		LotSize:     float64(w.LotSize),
		YearBuilt:   int(w.YearBuilt),
		HOAFee:      float64(w.HOAFee),
		Taxes:       float64(w.Taxes),
		Parking:     nonNil(w.Parking),
		Utilities:   nonNil(w.Utilities),
		Features:    nonNil(w.Features),
		Images:      imgs,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func decodeList(body []byte) ([]domain.PropertyRecord, error) {
	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if env.Properties == nil {
		return []domain.PropertyRecord{}, nil
	}
	out := make([]domain.PropertyRecord, 0, len(*env.Properties))
	for i, w := range *env.Properties {
		if err := validate.Struct(w); err != nil {
			return nil, fmt.Errorf("%w: properties[%d]: %v", domain.ErrParse, i, err)
		}
		out = append(out, w.toDomain())
	}
	return out, nil
}

func decodeDetail(body []byte) (domain.PropertyRecord, error) {
	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.PropertyRecord{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if env.Property == nil {
		return domain.PropertyRecord{}, fmt.Errorf("%w: missing property", domain.ErrParse)
	}
	if err := validate.Struct(env.Property); err != nil {
		return domain.PropertyRecord{}, fmt.Errorf("%w: property: %v", domain.ErrParse, err)
	}
	return env.Property.toDomain(), nil
}
