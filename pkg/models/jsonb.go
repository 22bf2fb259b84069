// Package models contains the domain entities and their create/update
// input shapes.
//
// Conventions shared with the CRUD engine:
//  1. Every primary key is called "id". No composite keys.
//  2. Record structs carry db tags matching the table columns exactly.
//  3. Create and update inputs expose their writable columns via FieldMap.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONBMap is a map type that handles PostgreSQL JSONB serialization.
type JSONBMap map[string]interface{}

// Value implements driver.Valuer for database serialization.
func (j JSONBMap) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner for database deserialization.
func (j *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into JSONBMap", value)
	}

	return json.Unmarshal(bytes, j)
}

// orEmpty keeps nil settings maps from turning into SQL NULLs on insert.
func orEmpty(m JSONBMap) JSONBMap {
	if m == nil {
		return JSONBMap{}
	}
	return m
}
