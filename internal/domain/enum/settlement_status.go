package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SettlementStatus represents how much of a transaction's total has been paid.
// It is always derived from paid vs. total amounts, never set independently.
type SettlementStatus int

const (
	SettlementStatusUnpaid  SettlementStatus = 0
	SettlementStatusPartial SettlementStatus = 1
	SettlementStatusPaid    SettlementStatus = 2
)

func (s SettlementStatus) String() string {
	names := [...]string{"Unpaid", "Partial", "Paid"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Unpaid"
	}
	return names[s]
}

func (s SettlementStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SettlementStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SettlementStatus(i)
		return nil
	}
	switch str {
	case "Unpaid":
		*s = SettlementStatusUnpaid
	case "Partial":
		*s = SettlementStatusPartial
	case "Paid":
		*s = SettlementStatusPaid
	}
	return nil
}

func (s SettlementStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SettlementStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SettlementStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SettlementStatus(v)
	case int:
		*s = SettlementStatus(v)
	}
	return nil
}
