package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jsalazar/tiendita-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CashRegister is one calendar day's drawer accounting session. ExpectedTotal
// is a live recompute while the session is open and dated today; once closed
// it is frozen at the value captured at close time.
type CashRegister struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	RegisterDate  time.Time           `gorm:"type:date;not null;uniqueIndex" json:"register_date"`
	OperatorID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"operator_id"`
	OpenedAt      time.Time           `gorm:"not null" json:"opened_at"`
	ClosedAt      *time.Time          `json:"closed_at,omitempty"`
	OpeningFloat  int64               `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ExpectedTotal int64               `gorm:"default:0" json:"-"` // Derived snapshot, in cents
	CountedCash   *int64              `json:"-"`                  // Nil until the drawer is counted at close
	Variance      int64               `gorm:"default:0" json:"-"` // counted - (float + expected), in cents
	Status        enum.RegisterStatus `gorm:"default:0;index" json:"status"`
	Note          string              `gorm:"size:255" json:"note,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r CashRegister) MarshalJSON() ([]byte, error) {
	type Alias CashRegister
	var counted *float64
	if r.CountedCash != nil {
		v := float64(*r.CountedCash) / 100
		counted = &v
	}
	return json.Marshal(&struct {
		Alias
		OpeningFloat  float64  `json:"opening_float"`
		ExpectedTotal float64  `json:"expected_total"`
		CountedCash   *float64 `json:"counted_cash,omitempty"`
		Variance      float64  `json:"variance"`
	}{
		Alias:         Alias(r),
		OpeningFloat:  float64(r.OpeningFloat) / 100,
		ExpectedTotal: float64(r.ExpectedTotal) / 100,
		CountedCash:   counted,
		Variance:      float64(r.Variance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new register session
func (r *CashRegister) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashRegister model
func (CashRegister) TableName() string {
	return "cash_registers"
}

// IsOpen reports whether the session still accepts a close.
func (r *CashRegister) IsOpen() bool {
	return r.Status == enum.RegisterStatusOpen
}
