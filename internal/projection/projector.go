// Package projection builds the filtered, sorted, display-ready view of a
// country directory for a filter string and language tag.
package projection

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/textfold"
)

// Entry is one row of a projection. It carries only what a list row needs.
// Each call returns its own CallingCodes. Translations may be shared with the
// projector's cache and must be treated as read-only.
type Entry struct {
	Code         string            `json:"code"`
	CallingCodes []string          `json:"calling_codes"`
	Translations map[string]string `json:"translations,omitempty"`
	Name         string            `json:"name"`
	Flag         string            `json:"flag"`
}

// Projector is stateless apart from an optional memo cache and is safe for
// concurrent use.
type Projector struct {
	dir   *countries.Directory
	names countries.Resolver
	cache *Cache
	log   *slog.Logger
}

// Option configures a Projector.
type Option func(*Projector)

// WithCache memoizes up to size projections keyed by filter and tag.
// size <= 0 disables caching.
func WithCache(size int) Option {
	return func(p *Projector) {
		if size > 0 {
			p.cache = NewCache(size)
		}
	}
}

// WithLogger sets the projector logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Projector) {
		if l != nil {
			p.log = l
		}
	}
}

// NewProjector creates a projector over dir resolving names with names.
func NewProjector(dir *countries.Directory, names countries.Resolver, opts ...Option) *Projector {
	p := &Projector{
		dir:   dir,
		names: names,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(config.LogKeyComponent, config.CompProjection)
	return p
}

// Resolver returns the name resolver used by the projector.
func (p *Projector) Resolver() countries.Resolver {
	return p.names
}

// Project returns every record whose resolved name contains filter
// (case-insensitively), ordered by the diacritic-folded name and then by
// code. An empty filter returns the whole directory. An empty tag uses the
// resolver default.
func (p *Projector) Project(filter, tag string) []Entry {
	tag = p.names.Tag(tag)

	if p.cache != nil {
		if entries, ok := p.cache.Get(filter, tag); ok {
			return entries
		}
	}

	entries := p.build(filter, tag)

	if p.cache != nil {
		p.cache.Set(filter, tag, entries)
	}
	p.log.Debug("projection built",
		config.LogKeyFilter, filter,
		config.LogKeyLang, tag,
		config.LogKeyCount, len(entries),
	)
	return entries
}

type keyedEntry struct {
	entry Entry
	key   string
}

func (p *Projector) build(filter, tag string) []Entry {
	records := p.dir.Records()

	keyed := make([]keyedEntry, 0, len(records))
	for _, rec := range records {
		name := p.names.Name(rec, tag)
		if !Matches(name, filter) {
			continue
		}
		keyed = append(keyed, keyedEntry{
			entry: Entry{
				Code:         rec.Code,
				CallingCodes: rec.CallingCodes,
				Translations: rec.Translations,
				Name:         name,
				Flag:         rec.Flag(),
			},
			key: textfold.Deburr(name),
		})
	}

	slices.SortFunc(keyed, func(a, b keyedEntry) int {
		if c := cmp.Compare(a.key, b.key); c != 0 {
			return c
		}
		return cmp.Compare(a.entry.Code, b.entry.Code)
	})

	entries := make([]Entry, len(keyed))
	for i, k := range keyed {
		entries[i] = k.entry
	}
	return entries
}

// Matches reports whether name passes the projection filter.
func Matches(name, filter string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}
