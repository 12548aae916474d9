package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and timestamp columns shared by all entities.
type BaseEntity struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Pagination wraps a page of items together with list metadata.
type Pagination[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}
