package common

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONStringList maps a jsonb array column to a []string.
type JSONStringList []string

func (l JSONStringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *JSONStringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	b, ok := src.([]byte)
	if !ok {
		return errors.New("unsupported type for JSONStringList")
	}

	return json.Unmarshal(b, l)
}

// JSONStringMap maps a jsonb object column to a map[string]string.
type JSONStringMap map[string]string

func (m JSONStringMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONStringMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}

	b, ok := src.([]byte)
	if !ok {
		return errors.New("unsupported type for JSONStringMap")
	}

	return json.Unmarshal(b, m)
}
