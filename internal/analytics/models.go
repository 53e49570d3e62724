package analytics

import "time"

// ViewEvent represents a single item page view, tagged with an anonymous
// visitor identifier. Rows are append-only; the insight engine never
// mutates or deletes them.
type ViewEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ItemID    string    `gorm:"index;size:36;not null"`
	VisitorID string    `gorm:"index;size:64;not null"`
	Country   string    `gorm:"size:2"`
	Timestamp time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

// ClickEvent represents an outbound WhatsApp contact click for an item,
// a stronger purchase-intent signal than a page view. Same lifecycle as
// ViewEvent.
type ClickEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ItemID    string    `gorm:"index;size:36;not null"`
	VisitorID string    `gorm:"index;size:64;not null"`
	Country   string    `gorm:"size:2"`
	Timestamp time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
