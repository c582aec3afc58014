package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment was settled
type PaymentMethod int

const (
	PaymentMethodCard     PaymentMethod = 0
	PaymentMethodCash     PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
	PaymentMethodPOS      PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"Card", "Cash", "Transfer", "POS"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Cash"
	}
	return names[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Card":
		*m = PaymentMethodCard
	case "Cash":
		*m = PaymentMethodCash
	case "Transfer":
		*m = PaymentMethodTransfer
	case "POS":
		*m = PaymentMethodPOS
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
