package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CreditStatus represents how far along a credit sale is in its repayment.
// It is always derived from the payment history, never set directly.
type CreditStatus int

const (
	CreditStatusPending CreditStatus = 0
	CreditStatusPartial CreditStatus = 1
	CreditStatusPaid    CreditStatus = 2
	// CreditStatusOverdue is reserved for due-date comparison by callers;
	// the ledger itself never derives it.
	CreditStatusOverdue CreditStatus = 3
)

func (s CreditStatus) String() string {
	names := [...]string{"Pending", "Partial", "Paid", "Overdue"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s CreditStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CreditStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CreditStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = CreditStatusPending
	case "Partial":
		*s = CreditStatusPartial
	case "Paid":
		*s = CreditStatusPaid
	case "Overdue":
		*s = CreditStatusOverdue
	}
	return nil
}

func (s CreditStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CreditStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CreditStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = CreditStatus(v)
	case int:
		*s = CreditStatus(v)
	}
	return nil
}
