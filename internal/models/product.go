package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a product in the store.
type Product struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(255);not null"`
	Price     *float64  `json:"price"`
	Amount    *float64  `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the identity of a new product.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductPatch is a partial update. Only fields present in the request body
// are applied; a present null clears a nullable column.
type ProductPatch struct {
	Name   Optional[string]  `json:"name"`
	Price  Optional[float64] `json:"price"`
	Amount Optional[float64] `json:"amount"`
}

// Fields returns the columns to update, keyed by column name. A nil value
// means SQL NULL. It fails when the patch would blank the name.
func (p ProductPatch) Fields() (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	if p.Name.Set {
		if p.Name.Null {
			return nil, ErrNameRequired
		}
		name := strings.TrimSpace(p.Name.Value)
		if name == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = name
	}
	if p.Price.Set {
		fields["price"] = p.Price.Ptr()
	}
	if p.Amount.Set {
		fields["amount"] = p.Amount.Ptr()
	}
	return fields, nil
}
