package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PricingMode represents whether quoted prices already contain tax
type PricingMode int

const (
	PricingModeExclusive PricingMode = 0
	PricingModeInclusive PricingMode = 1
)

func (p PricingMode) String() string {
	names := [...]string{"Exclusive", "Inclusive"}
	if int(p) < 0 || int(p) >= len(names) {
		return "Exclusive"
	}
	return names[p]
}

func (p PricingMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PricingMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PricingMode(i)
		return nil
	}
	switch str {
	case "Exclusive":
		*p = PricingModeExclusive
	case "Inclusive":
		*p = PricingModeInclusive
	}
	return nil
}

func (p PricingMode) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *PricingMode) Scan(value interface{}) error {
	if value == nil {
		*p = PricingModeExclusive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = PricingMode(v)
	case int:
		*p = PricingMode(v)
	}
	return nil
}
