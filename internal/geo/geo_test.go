package geo

import (
	"errors"
	"net"
	"path/filepath"
	"testing"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	records map[string]*geoip2.Country
	closed  bool
}

func (f *fakeDB) Country(ip net.IP) (*geoip2.Country, error) {
	if rec, ok := f.records[ip.String()]; ok {
		return rec, nil
	}
	return nil, errors.New("lookup failed")
}

func (f *fakeDB) Close() error {
	f.closed = true
	return nil
}

func newFake() *fakeDB {
	located := &geoip2.Country{}
	located.Country.IsoCode = "de"

	registeredOnly := &geoip2.Country{}
	registeredOnly.RegisteredCountry.IsoCode = "FR"

	return &fakeDB{records: map[string]*geoip2.Country{
		"192.0.2.1":   located,
		"192.0.2.2":   registeredOnly,
		"2001:db8::1": {},
	}}
}

func TestCountryCode(t *testing.T) {
	db := newFake()
	l := &Locator{db: db}

	code, err := l.CountryCode("192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "DE", code)

	code, err = l.CountryCode(" 192.0.2.2 ")
	require.NoError(t, err)
	assert.Equal(t, "FR", code)

	_, err = l.CountryCode("2001:db8::1")
	assert.ErrorIs(t, err, ErrNoCountry)

	_, err = l.CountryCode("198.51.100.7")
	assert.Error(t, err)

	_, err = l.CountryCode("not-an-ip")
	assert.Error(t, err)

	require.NoError(t, l.Close())
	assert.True(t, db.closed)
}

func TestOpenMissingDatabase(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "GeoLite2-Country.mmdb"))
	assert.Error(t, err)
}
