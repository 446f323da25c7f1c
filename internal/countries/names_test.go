package countries

import (
	"testing"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestResolverName(t *testing.T) {
	fr := Record{Code: "FR", CommonName: "France", Translations: map[string]string{"fra": "France", "deu": "Frankreich"}}
	de := Record{Code: "DE", CommonName: "Germany", Translations: map[string]string{"deu": "Deutschland"}}

	r := NewResolver("eng")

	tests := []struct {
		name string
		rec  Record
		tag  string
		want string
	}{
		{"translation present", fr, "deu", "Frankreich"},
		{"translation missing falls back to common name", de, "fra", "Germany"},
		{"empty tag uses default", de, "", "Germany"},
		{"unknown tag", fr, "xyz", "France"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Name(tc.rec, tc.tag))
		})
	}
}

func TestResolverDefaultTag(t *testing.T) {
	de := Record{Code: "DE", CommonName: "Germany", Translations: map[string]string{"deu": "Deutschland"}}

	r := NewResolver("deu")
	assert.Equal(t, "Deutschland", r.Name(de, ""))
	assert.Equal(t, "Germany", r.Name(de, "fra"), "no chain through the default tag")
	assert.Equal(t, "deu", r.Tag(""))
	assert.Equal(t, "fra", r.Tag("fra"))

	var zero Resolver
	assert.Equal(t, config.DefaultLanguage, zero.Default())
}
