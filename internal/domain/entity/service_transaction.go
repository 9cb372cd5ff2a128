package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceTransaction is a signed movement against a service balance.
// Negative amounts represent outflows (expenses) and reduce the day's income.
type ServiceTransaction struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	TxDate      time.Time      `gorm:"type:date;not null;index" json:"tx_date"`
	Amount      int64          `gorm:"not null" json:"-"` // Signed cents, excluded from JSON
	Description string         `gorm:"size:255" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t ServiceTransaction) MarshalJSON() ([]byte, error) {
	type Alias ServiceTransaction
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *ServiceTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceTransaction model
func (ServiceTransaction) TableName() string {
	return "service_transactions"
}
