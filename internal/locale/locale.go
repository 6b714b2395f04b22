// Package locale translates Alchemy language codes into the Contentful locale
// codes configured on the target space.
package locale

import (
	"fmt"

	"golang.org/x/text/language"

	"curator/internal/migrate"
)

// Default is the Contentful locale every asset field is keyed under at
// creation time and the lookup locale for entry queries.
const Default = "en-GB"

var targets = map[string]string{
	"de":    "de-DE",
	"en":    "en-GB",
	"en-gb": "en-GB",
	"es":    "es-ES",
	"fi":    "fi-FI",
	"fr":    "fr-FR",
	"it":    "it-IT",
	"lv":    "lv-LV",
	"nl":    "nl-NL",
	"pl":    "pl-PL",
	"ro":    "ro-RO",
	"sl":    "sl-SI",
	"sv":    "sv-SE",
}

// Resolve maps a source language code to its Contentful locale. The table
// must cover every code the source schema emits: a miss is a configuration
// error, never a silent skip.
func Resolve(sourceCode string) (string, error) {
	target, ok := targets[sourceCode]
	if !ok {
		return "", migrate.Wrap(migrate.ErrConfiguration, "locale", sourceCode, "no Contentful locale mapping", nil)
	}
	return target, nil
}

// Validate checks that every mapped Contentful code is a well-formed BCP 47
// tag. Called once at startup; a failure means the table itself is broken.
func Validate() error {
	for source, target := range targets {
		if _, err := language.Parse(target); err != nil {
			return fmt.Errorf("locale mapping %s => %s: %w", source, target, err)
		}
	}
	if _, err := language.Parse(Default); err != nil {
		return fmt.Errorf("default locale %s: %w", Default, err)
	}
	return nil
}
