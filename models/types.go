package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PriceMap maps a size label (e.g. "regular", "large") to a price.
// Stored as a JSON text column.
type PriceMap map[string]float64

func (p PriceMap) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PriceMap) Scan(src interface{}) error {
	return scanJSON(src, p)
}

// StringList is an ordered list of strings stored as a JSON text column
// (ingredients, allergens).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// JSONMap is a free-form JSON object column (opening hours keyed by weekday).
// The contents are stored and returned verbatim.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}
