package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONList is a jsonb array column kept as raw bytes. Decoding is left to the
// caller so malformed content can be reported instead of failing the row scan.
type JSONList []byte

func (l *JSONList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
	case []byte:
		*l = append((*l)[:0], v...)
	case string:
		*l = JSONList(v)
	default:
		return fmt.Errorf("json list: unsupported source type %T", src)
	}
	return nil
}

func (l JSONList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return string(l), nil
}

func (JSONList) GormDataType() string {
	return "jsonb"
}

func (l JSONList) MarshalJSON() ([]byte, error) {
	if len(l) == 0 || !json.Valid(l) {
		return []byte("null"), nil
	}
	return []byte(l), nil
}

func (l *JSONList) UnmarshalJSON(data []byte) error {
	*l = append((*l)[:0], data...)
	return nil
}

// IntList encodes ints as a JSONList. A nil slice becomes "[]".
func IntList(values []int) JSONList {
	if values == nil {
		values = []int{}
	}
	b, _ := json.Marshal(values)
	return JSONList(b)
}

// StringList encodes strings as a JSONList.
func StringList(values []string) JSONList {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return JSONList(b)
}
