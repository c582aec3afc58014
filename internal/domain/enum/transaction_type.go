package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionType represents the kind of revenue transaction
type TransactionType int

const (
	TransactionTypePOS      TransactionType = 0
	TransactionTypeFolio    TransactionType = 1
	TransactionTypeProforma TransactionType = 2
)

func (t TransactionType) String() string {
	names := [...]string{"POS", "Folio", "Proforma"}
	if int(t) < 0 || int(t) >= len(names) {
		return "POS"
	}
	return names[t]
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TransactionType(i)
		return nil
	}
	switch str {
	case "POS":
		*t = TransactionTypePOS
	case "Folio":
		*t = TransactionTypeFolio
	case "Proforma":
		*t = TransactionTypeProforma
	}
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = TransactionTypePOS
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TransactionType(v)
	case int:
		*t = TransactionType(v)
	}
	return nil
}
