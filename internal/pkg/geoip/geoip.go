// Package geoip resolves visitor IP addresses to country codes using an
// optional GeoLite2 database.
package geoip

import (
	"log/slog"
	"net"
	"os"

	"github.com/oschwald/geoip2-golang"
)

// Resolver wraps a GeoLite2 reader. A nil Resolver is valid and resolves
// every address to the empty string, so GeoIP stays optional.
type Resolver struct {
	reader *geoip2.Reader
	logger *slog.Logger
}

// NewResolver opens the GeoLite2 database at path. Returns nil when the
// path is empty or the file does not exist; country enrichment is then
// disabled.
func NewResolver(path string, logger *slog.Logger) *Resolver {
	if path == "" {
		logger.Debug("GeoIP database path not configured - country enrichment disabled")
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("GeoLite2 database not found - country enrichment disabled",
			slog.String("path", path))
		return nil
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		logger.Warn("Failed to open GeoLite2 database - country enrichment disabled",
			slog.String("path", path), slog.Any("error", err))
		return nil
	}

	logger.Info("GeoLite2 database loaded", slog.String("path", path))
	return &Resolver{reader: reader, logger: logger}
}

// CountryCode returns the ISO country code for an IP address, or the
// empty string when the address cannot be resolved.
func (r *Resolver) CountryCode(ipAddress string) string {
	if r == nil || r.reader == nil {
		return ""
	}

	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return ""
	}

	record, err := r.reader.Country(ip)
	if err != nil {
		r.logger.Debug("GeoIP lookup failed", slog.String("ip", ipAddress), slog.Any("error", err))
		return ""
	}

	return record.Country.IsoCode
}

// Close releases the underlying reader.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
