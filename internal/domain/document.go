package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Document is an open-ended JSON object payload (element_info / data on
// interactions). The service layer never looks inside it: it is written and
// read back verbatim.
type Document map[string]any

// Value marshals the document for a JSONB column. A nil document stores NULL.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *Document) Scan(src any) error {
	if src == nil {
		*d = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("document: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*d = nil
		return nil
	}
	return json.Unmarshal(raw, d)
}
