package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents the settlement channel of a sale or payment
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodQR       PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
	PaymentMethodCredit   PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"Cash", "QR", "Transfer", "Credit"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Cash"
	}
	return names[m]
}

// IsDirect reports whether the method settles at sale time (everything but credit).
func (m PaymentMethod) IsDirect() bool {
	return m != PaymentMethodCredit
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Cash":
		*m = PaymentMethodCash
	case "QR":
		*m = PaymentMethodQR
	case "Transfer":
		*m = PaymentMethodTransfer
	case "Credit":
		*m = PaymentMethodCredit
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
