// Package models holds shared database helpers used across model packages.
package models

import (
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
)

const writeRetries = 3

// PerformWrite executes a write transaction with retry logic for SQLite
// busy errors. Writes that keep failing after the retries are returned
// to the caller.
func PerformWrite(logger *slog.Logger, dbConn *gorm.DB, f func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= writeRetries; attempt++ {
		err = dbConn.Transaction(f)
		if err == nil {
			return nil
		}
		if !isBusyError(err) {
			return err
		}
		logger.Debug("Retrying write after busy database",
			slog.Int("attempt", attempt), slog.Any("error", err))
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
	return err
}

func isBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
