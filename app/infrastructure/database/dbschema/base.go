package dbschema

import "time"

// BaseModel carries the surrogate key and bookkeeping timestamps every row
// has. Public IDs live on the individual schemas; the numeric key never
// leaves this package's callers.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
