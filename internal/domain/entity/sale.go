package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed or voided transaction. Credit sales additionally
// carry the installment plan fields; AmountPaid and CreditStatus are derived
// from the payment history and recomputed on every ledger write.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleDate      time.Time          `gorm:"type:date;not null;index" json:"sale_date"`
	Total         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	Status        enum.SaleStatus    `gorm:"default:0" json:"status"`

	// Credit plan (zero values for non-credit sales)
	InstallmentCount int               `gorm:"default:0" json:"installment_count"`
	DownPayment      int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	InterestRate     float64           `gorm:"default:0" json:"interest_rate"`
	InterestAmount   int64             `gorm:"default:0" json:"-"` // Flat markup per installment, in cents
	AmountPaid       int64             `gorm:"default:0" json:"-"` // Derived, in cents
	CreditStatus     enum.CreditStatus `gorm:"default:0" json:"credit_status"`

	Note      string         `gorm:"size:255" json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Payments []CreditPayment `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Total             float64 `json:"total"`
		DownPayment       float64 `json:"down_payment"`
		InterestAmount    float64 `json:"interest_amount"`
		AmountPaid        float64 `json:"amount_paid"`
		TotalWithInterest float64 `json:"total_with_interest"`
	}{
		Alias:             Alias(s),
		Total:             float64(s.Total) / 100,
		DownPayment:       float64(s.DownPayment) / 100,
		InterestAmount:    float64(s.InterestAmount) / 100,
		AmountPaid:        float64(s.AmountPaid) / 100,
		TotalWithInterest: float64(s.TotalWithInterest()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// IsCredit reports whether the sale was settled on credit.
func (s *Sale) IsCredit() bool {
	return s.PaymentMethod == enum.PaymentMethodCredit
}

// TotalWithInterest returns the amount a credit sale must repay, in cents:
// the base total plus the flat interest markup once per installment.
// Always computed from the canonical fields, never cached.
func (s *Sale) TotalWithInterest() int64 {
	if s.InterestAmount > 0 {
		return s.Total + s.InterestAmount*int64(s.InstallmentCount)
	}
	return s.Total
}
