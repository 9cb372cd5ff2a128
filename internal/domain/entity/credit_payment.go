package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CreditPayment is one recorded installment settlement against a credit sale.
// The (sale_id, installment_number) pair is unique; a race on the same
// installment surfaces as a constraint violation for the loser.
type CreditPayment struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleID            uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_sale_installment" json:"sale_id"`
	InstallmentNumber int                `gorm:"not null;uniqueIndex:idx_sale_installment" json:"installment_number"`
	AmountPaid        int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentDate       time.Time          `gorm:"type:date;not null;index" json:"payment_date"`
	PaymentMethod     enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	Note              string             `gorm:"size:255" json:"note,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p CreditPayment) MarshalJSON() ([]byte, error) {
	type Alias CreditPayment
	return json.Marshal(&struct {
		Alias
		AmountPaid float64 `json:"amount_paid"`
	}{
		Alias:      Alias(p),
		AmountPaid: float64(p.AmountPaid) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *CreditPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditPayment model
func (CreditPayment) TableName() string {
	return "credit_payments"
}
