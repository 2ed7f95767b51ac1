package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB stores schemaless nested values (working hours, social links).
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &j)
	case string:
		return json.Unmarshal([]byte(v), &j)
	}
	return errors.New("unsupported type for JSONB scan")
}
