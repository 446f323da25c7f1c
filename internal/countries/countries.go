// Package countries provides the ISO-3166 country directory: fixed-field
// records validated once at load time and looked up by alpha-2 code.
package countries

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// ErrInvalidRecord is wrapped by every validation failure in New.
var ErrInvalidRecord = errors.New("invalid country record")

// Record is one country. Records handed out by a Directory are copies, so
// callers may not use them to change the directory.
type Record struct {
	Code         string            `yaml:"cca2" json:"code"`
	CommonName   string            `yaml:"name" json:"name"`
	CallingCodes []string          `yaml:"callingCodes" json:"calling_codes"`
	Translations map[string]string `yaml:"translations" json:"translations,omitempty"`
}

// PrimaryCallingCode returns the first calling code, if any.
func (r Record) PrimaryCallingCode() (string, bool) {
	if len(r.CallingCodes) == 0 {
		return "", false
	}
	return r.CallingCodes[0], true
}

// Flag returns the emoji flag for the record's code.
func (r Record) Flag() string {
	return Flag(r.Code)
}

func (r Record) clone() Record {
	r.CallingCodes = slices.Clone(r.CallingCodes)
	r.Translations = maps.Clone(r.Translations)
	return r
}

// Flag returns the regional-indicator emoji pair for an alpha-2 code, or ""
// when code is not two ASCII letters.
func Flag(code string) string {
	if !ValidCode(code) {
		return ""
	}
	upper := strings.ToUpper(code)
	const base = 0x1F1E6
	return string([]rune{
		rune(base + int(upper[0]-'A')),
		rune(base + int(upper[1]-'A')),
	})
}

// Directory is an immutable set of country records keyed by code.
type Directory struct {
	records []Record
	byCode  map[string]int
}

// Option configures directory construction.
type Option func(*options)

type options struct {
	derived []string
	logger  *slog.Logger
}

// WithDerivedTranslations fills translations for the given tags from CLDR
// region names wherever the dataset has none. Dataset values always win.
func WithDerivedTranslations(tags ...string) Option {
	return func(o *options) {
		o.derived = append(o.derived, tags...)
	}
}

// WithLogger sets the logger used while building the directory.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New validates records and builds a directory. Codes are normalized to
// upper case; calling codes lose a leading "+".
func New(records []Record, opts ...Option) (*Directory, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Directory{
		records: make([]Record, 0, len(records)),
		byCode:  make(map[string]int, len(records)),
	}

	for i, raw := range records {
		rec, err := normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, raw.Code, err)
		}
		if _, dup := d.byCode[rec.Code]; dup {
			return nil, fmt.Errorf("record %d: %w: duplicate code %s", i, ErrInvalidRecord, rec.Code)
		}
		d.byCode[rec.Code] = len(d.records)
		d.records = append(d.records, rec)
	}

	if len(o.derived) > 0 {
		deriveTranslations(d.records, o.derived, o.logger)
	}

	return d, nil
}

func normalize(r Record) (Record, error) {
	out := Record{
		Code:       strings.ToUpper(strings.TrimSpace(r.Code)),
		CommonName: strings.TrimSpace(r.CommonName),
	}
	if !ValidCode(out.Code) {
		return Record{}, fmt.Errorf("%w: code must be two letters", ErrInvalidRecord)
	}
	if out.CommonName == "" {
		return Record{}, fmt.Errorf("%w: empty name", ErrInvalidRecord)
	}

	out.CallingCodes = make([]string, 0, len(r.CallingCodes))
	for _, cc := range r.CallingCodes {
		cc = strings.TrimPrefix(strings.TrimSpace(cc), "+")
		if cc == "" || strings.Trim(cc, "0123456789") != "" {
			return Record{}, fmt.Errorf("%w: bad calling code %q", ErrInvalidRecord, cc)
		}
		out.CallingCodes = append(out.CallingCodes, cc)
	}

	out.Translations = make(map[string]string, len(r.Translations))
	for tag, name := range r.Translations {
		tag, name = strings.TrimSpace(tag), strings.TrimSpace(name)
		if tag == "" || name == "" {
			return Record{}, fmt.Errorf("%w: empty translation for tag %q", ErrInvalidRecord, tag)
		}
		out.Translations[tag] = name
	}

	return out, nil
}

// ValidCode reports whether code is two ASCII letters in either case.
func ValidCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := code[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// Lookup returns the record for an exact code. A missing or empty code is
// reported as not found, never as an error.
func (d *Directory) Lookup(code string) (Record, bool) {
	if d == nil || code == "" {
		return Record{}, false
	}
	i, ok := d.byCode[code]
	if !ok {
		return Record{}, false
	}
	return d.records[i].clone(), true
}

// Records returns copies of all records in dataset order.
func (d *Directory) Records() []Record {
	if d == nil {
		return nil
	}
	result := make([]Record, len(d.records))
	for i, r := range d.records {
		result[i] = r.clone()
	}
	return result
}

// Codes returns all codes in dataset order.
func (d *Directory) Codes() []string {
	if d == nil {
		return nil
	}
	result := make([]string, len(d.records))
	for i, r := range d.records {
		result[i] = r.Code
	}
	return result
}

// Len returns the number of countries.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

