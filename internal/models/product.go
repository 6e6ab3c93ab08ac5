package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Product represents an item listed by a user. Every product belongs to
// exactly one owner, referenced by UserID.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          string    `bun:"id,pk" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,notnull" json:"description"`
	Price       float64   `bun:"price,notnull" json:"price"`
	UserID      string    `bun:"user_id,notnull" json:"userId"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
