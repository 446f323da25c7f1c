package countries

import (
	"log/slog"

	"github.com/hightemp/countrypicker/internal/config"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// deriveTranslations adds CLDR region names under each tag for records that
// lack one. Tags are kept verbatim as map keys ("fra" stays "fra") so they
// match what callers pass to Resolver.Name.
func deriveTranslations(records []Record, tags []string, log *slog.Logger) {
	log = log.With(config.LogKeyComponent, config.CompDirectory)

	for _, tag := range tags {
		parsed, err := language.Parse(tag)
		if err != nil {
			log.Warn("skipping translation tag", config.LogKeyTag, tag, config.LogKeyError, err)
			continue
		}
		namer := display.Regions(parsed)
		if namer == nil {
			log.Warn("no region names for tag", config.LogKeyTag, tag)
			continue
		}

		added := 0
		for i := range records {
			rec := &records[i]
			if _, ok := rec.Translations[tag]; ok {
				continue
			}
			region, err := language.ParseRegion(rec.Code)
			if err != nil {
				continue
			}
			name := namer.Name(region)
			if name == "" {
				continue
			}
			if rec.Translations == nil {
				rec.Translations = make(map[string]string)
			}
			rec.Translations[tag] = name
			added++
		}
		log.Debug("derived translations", config.LogKeyTag, tag, config.LogKeyCount, added)
	}
}
