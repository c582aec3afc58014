package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxKind classifies a tax rule for receipt grouping. Unrecognized kinds are
// treated as VAT-like charges, not rejected.
type TaxKind int

const (
	TaxKindVAT           TaxKind = 0
	TaxKindServiceCharge TaxKind = 1
	TaxKindOther         TaxKind = 2
)

func (k TaxKind) String() string {
	names := [...]string{"VAT", "ServiceCharge", "Other"}
	if int(k) < 0 || int(k) >= len(names) {
		return "VAT"
	}
	return names[k]
}

// IsVATLike reports whether the kind falls into the VAT receipt bucket.
// ServiceCharge is the only kind presented separately.
func (k TaxKind) IsVATLike() bool {
	return k != TaxKindServiceCharge
}

func (k TaxKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *TaxKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = TaxKind(i)
		return nil
	}
	switch str {
	case "VAT":
		*k = TaxKindVAT
	case "ServiceCharge":
		*k = TaxKindServiceCharge
	case "Other":
		*k = TaxKindOther
	}
	return nil
}

func (k TaxKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *TaxKind) Scan(value interface{}) error {
	if value == nil {
		*k = TaxKindVAT
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = TaxKind(v)
	case int:
		*k = TaxKind(v)
	}
	return nil
}
