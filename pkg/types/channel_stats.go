package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ChannelStat aggregates the views observed for a single channel.
type ChannelStat struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Views int64  `json:"views"`
}

// ChannelStats is an ordered top-channel list persisted as JSONB.
type ChannelStats []ChannelStat

// Value marshals the list into JSON for Postgres.
func (c ChannelStats) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the list.
func (c *ChannelStats) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("channel stats: unsupported scan type %T", value)
	}

	result := make(ChannelStats, 0)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*c = result
	return nil
}
