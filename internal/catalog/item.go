// Package catalog provides read and write access to storefront items.
package catalog

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ItemStatus represents the lifecycle status of a catalog item.
type ItemStatus string

// Item lifecycle statuses
const (
	StatusAvailable   ItemStatus = "available"
	StatusReserved    ItemStatus = "reserved"
	StatusSold        ItemStatus = "sold"
	StatusOfflineSold ItemStatus = "offline_sold"
)

// IsSoldFamily reports whether the status counts as a completed sale,
// online or offline.
func (s ItemStatus) IsSoldFamily() bool {
	return s == StatusSold || s == StatusOfflineSold
}

// ItemNotFoundError represents an error when an item is not found
type ItemNotFoundError struct {
	Slug string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found for slug: %s", e.Slug)
}

// NewItemNotFoundError creates a new ItemNotFoundError
func NewItemNotFoundError(slug string) *ItemNotFoundError {
	return &ItemNotFoundError{Slug: slug}
}

// Item represents a storefront catalog item. The insight engine only
// reads items; writes happen through the admin surface and the seeder.
type Item struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Slug      string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title     string     `gorm:"not null" json:"title"`
	Price     float64    `gorm:"not null;default:0" json:"price"`
	Status    ItemStatus `gorm:"index;not null;default:'available'" json:"status"`
	ImageURL  string     `json:"image_url"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GetAllItems returns every catalog item ordered by creation time.
// The deterministic ordering matters for tie-breaking in downstream
// aggregation.
func GetAllItems(db *gorm.DB) ([]Item, error) {
	var items []Item
	if err := db.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("error fetching items: %w", err)
	}
	return items, nil
}

// GetItemBySlug retrieves an item by its public slug.
func GetItemBySlug(db *gorm.DB, slug string) (*Item, error) {
	var item Item
	if err := db.Where("slug = ?", slug).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewItemNotFoundError(slug)
		}
		return nil, fmt.Errorf("unexpected error querying item: %w", err)
	}
	return &item, nil
}

// GetItemsByStatus returns items filtered by lifecycle status.
func GetItemsByStatus(db *gorm.DB, status ItemStatus) ([]Item, error) {
	var items []Item
	if err := db.Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("error fetching items by status: %w", err)
	}
	return items, nil
}

// CreateItem inserts a new catalog item.
func CreateItem(db *gorm.DB, item *Item) error {
	if err := db.Create(item).Error; err != nil {
		return fmt.Errorf("error creating item: %w", err)
	}
	return nil
}

// UpdateItemStatus transitions an item to a new lifecycle status.
func UpdateItemStatus(db *gorm.DB, id string, status ItemStatus) error {
	result := db.Model(&Item{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("error updating item status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
