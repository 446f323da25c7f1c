package countries

import "github.com/hightemp/countrypicker/internal/config"

// Resolver picks the display name of a record for a language tag.
// The zero value resolves with config.DefaultLanguage.
type Resolver struct {
	defaultTag string
}

// NewResolver returns a resolver whose default tag is used when callers pass
// no tag. An empty defaultTag means config.DefaultLanguage.
func NewResolver(defaultTag string) Resolver {
	return Resolver{defaultTag: defaultTag}
}

// Default returns the tag used when none is given.
func (r Resolver) Default() string {
	if r.defaultTag == "" {
		return config.DefaultLanguage
	}
	return r.defaultTag
}

// Tag returns tag, or the default when tag is empty.
func (r Resolver) Tag(tag string) string {
	if tag == "" {
		return r.Default()
	}
	return tag
}

// Name returns the translation for tag if the record has one, otherwise its
// common name. There is no further fallback chain.
func (r Resolver) Name(rec Record, tag string) string {
	if name, ok := rec.Translations[r.Tag(tag)]; ok && name != "" {
		return name
	}
	return rec.CommonName
}
