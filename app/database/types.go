package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeArray stores an ordered sequence of timestamps as jsonb.
type TimeArray []time.Time

func (a *TimeArray) Scan(value interface{}) error {
	if value == nil {
		*a = TimeArray{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type TimeArray", value)
	}
}

func (a TimeArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}
