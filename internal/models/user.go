package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User represents a user account in the system.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"` // Never expose this to the client
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
