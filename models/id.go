// ABOUTME: Identifier type tolerant of numeric and string JSON encodings
// ABOUTME: Backend inventory rows use numeric ids while staff forms send strings
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexID is a product key that decodes from either a JSON string or number.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) String() string {
	return string(id)
}
