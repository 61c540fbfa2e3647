package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleStatus represents the status of a sale
type SaleStatus int

const (
	SaleStatusCompleted SaleStatus = 0
	SaleStatusPending   SaleStatus = 1
	SaleStatusCancelled SaleStatus = 2
)

func (s SaleStatus) String() string {
	return [...]string{"completed", "pending", "cancelled"}[s]
}

// IsValid reports whether the status is one of the known values
func (s SaleStatus) IsValid() bool {
	return s >= SaleStatusCompleted && s <= SaleStatusCancelled
}

// ParseSaleStatus converts a string into a SaleStatus. The second return
// value reports whether the string named a known status.
func ParseSaleStatus(s string) (SaleStatus, bool) {
	switch s {
	case "completed":
		return SaleStatusCompleted, true
	case "pending":
		return SaleStatusPending, true
	case "cancelled":
		return SaleStatusCancelled, true
	}
	return SaleStatusCompleted, false
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	status, ok := ParseSaleStatus(str)
	if !ok {
		return fmt.Errorf("unknown sale status %q", str)
	}
	*s = status
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusCompleted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
