// Package geoip resolves geolocation details from a local MaxMind GeoIP2 or
// GeoLite2 City database, as an offline alternative to the ipinfo service.
package geoip

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/oschwald/geoip2-golang"

	"github.com/B3RT1337/lookup-bot/internal/services"
)

// Name is the service identifier.
const Name = "geoip"

// CityReader is the subset of *geoip2.Reader used by the service.
type CityReader interface {
	City(ip net.IP) (*geoip2.City, error)
}

// Service answers IP detail lookups from a City database.
type Service struct {
	reader CityReader
	logger *slog.Logger
}

// NewService creates a service over an already opened reader.
func NewService(reader CityReader, logger *slog.Logger) *Service {
	return &Service{reader: reader, logger: logger}
}

// Open opens the database at path. The caller must Close the returned reader.
func Open(path string) (*geoip2.Reader, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GeoIP database %q: %w", path, err)
	}
	return db, nil
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// Run looks ip up in the database. Unlike the HTTP source, the input must be
// a literal IP address.
func (s *Service) Run(_ context.Context, ip string) (*services.IPDetails, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("%w: must be a valid IP address: %q", services.ErrInvalidInput, ip)
	}

	rec, err := s.reader.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: GeoIP lookup for %q: %w", services.ErrRequestFailed, ip, err)
	}

	details := &services.IPDetails{
		IP:         parsed.String(),
		City:       rec.City.Names["en"],
		Country:    rec.Country.IsoCode,
		Timezone:   rec.Location.TimeZone,
		PostalCode: rec.Postal.Code,
	}
	if len(rec.Subdivisions) > 0 {
		details.Region = rec.Subdivisions[0].Names["en"]
	}
	if rec.Location.Latitude != 0 || rec.Location.Longitude != 0 {
		details.Coordinates = strconv.FormatFloat(rec.Location.Latitude, 'f', 4, 64) + "," +
			strconv.FormatFloat(rec.Location.Longitude, 'f', 4, 64)
	}
	details.FillDefaults()
	s.logger.Debug("GeoIP lookup complete", "ip", ip, "country", details.Country)
	return details, nil
}
