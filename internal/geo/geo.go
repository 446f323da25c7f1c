// Package geo suggests an initial picker country from an IP address using an
// offline MaxMind country database.
package geo

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrNoCountry is returned when the database has no country for an address.
var ErrNoCountry = errors.New("no country for address")

// countryDB is the part of *geoip2.Reader the locator needs.
type countryDB interface {
	Country(ip net.IP) (*geoip2.Country, error)
	Close() error
}

// Locator maps IP addresses to alpha-2 country codes.
type Locator struct {
	db countryDB
}

// Open opens a GeoLite2/GeoIP2 Country (or City) database.
func Open(path string) (*Locator, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &Locator{db: reader}, nil
}

// CountryCode returns the upper-case country code for ip. The physical
// country wins over the registered one.
func (l *Locator) CountryCode(ip string) (string, error) {
	addr := net.ParseIP(strings.TrimSpace(ip))
	if addr == nil {
		return "", fmt.Errorf("invalid IP address %q", ip)
	}

	record, err := l.db.Country(addr)
	if err != nil {
		return "", fmt.Errorf("geoip lookup %s: %w", ip, err)
	}

	code := record.Country.IsoCode
	if code == "" {
		code = record.RegisteredCountry.IsoCode
	}
	if code == "" {
		return "", fmt.Errorf("%s: %w", ip, ErrNoCountry)
	}
	return strings.ToUpper(code), nil
}

// Close releases the database.
func (l *Locator) Close() error {
	return l.db.Close()
}
