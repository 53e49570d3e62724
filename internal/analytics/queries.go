package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GetAllViewEvents returns every recorded view event in insertion order.
func GetAllViewEvents(db *gorm.DB) ([]ViewEvent, error) {
	var events []ViewEvent
	if err := db.Order("id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("error fetching view events: %w", err)
	}
	return events, nil
}

// GetAllClickEvents returns every recorded click event in insertion order.
func GetAllClickEvents(db *gorm.DB) ([]ClickEvent, error) {
	var events []ClickEvent
	if err := db.Order("id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("error fetching click events: %w", err)
	}
	return events, nil
}

// CountDistinctVisitorsSince counts each distinct visitor identifier at
// most once among view events recorded at or after the cutoff.
func CountDistinctVisitorsSince(db *gorm.DB, cutoff time.Time) (int64, error) {
	var count int64
	err := db.Model(&ViewEvent{}).
		Where("timestamp >= ?", cutoff).
		Distinct("visitor_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("error counting distinct visitors: %w", err)
	}
	return count, nil
}

// DeleteEventsOlderThan removes view and click events older than the
// cutoff in batches, returning the total number of rows deleted. Used by
// the retention cleanup job.
func DeleteEventsOlderThan(db *gorm.DB, cutoff time.Time, batchSize int) (int64, error) {
	totalDeleted := int64(0)

	for _, model := range []interface{}{&ViewEvent{}, &ClickEvent{}} {
		for {
			result := db.Where("created_at < ?", cutoff).
				Limit(batchSize).
				Delete(model)
			if result.Error != nil {
				return totalDeleted, fmt.Errorf("error deleting old events: %w", result.Error)
			}
			totalDeleted += result.RowsAffected
			if result.RowsAffected < int64(batchSize) {
				break
			}
		}
	}

	return totalDeleted, nil
}
