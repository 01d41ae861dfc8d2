package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Explanation carries the three coded reason strings attached to a score.
// Codes are machine-readable ("label|param|param"), not prose; rendering
// and localization are a front-end concern.
type Explanation struct {
	Demand      string `json:"demand"`
	Competition string `json:"competition"`
	Opportunity string `json:"opportunity"`
}

// Value marshals the explanation into JSON for Postgres.
func (e Explanation) Value() (driver.Value, error) {
	buf, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the explanation.
func (e *Explanation) Scan(value interface{}) error {
	if value == nil {
		*e = Explanation{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("explanation: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, e)
}
