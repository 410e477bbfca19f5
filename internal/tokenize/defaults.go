// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tokenize

import (
	"fmt"
	"strings"
)

// Languages maps the CLI language codes to Punkt table directory names.
var Languages = map[string]string{
	"en": "english",
	"es": "spanish",
}

// PunktLanguage returns the Punkt directory name for an ISO language code.
func PunktLanguage(code string) (string, error) {
	name, ok := Languages[strings.ToLower(code)]
	if !ok {
		return "", fmt.Errorf("unsupported language %q: use en or es", code)
	}
	return name, nil
}

// builtinAbbrevs is used when the Punkt tables could not be installed.
var builtinAbbrevs = map[string][]string{
	"english": {
		"dr", "mr", "mrs", "ms", "prof", "rev", "gen", "col", "capt", "lt", "sgt",
		"st", "jr", "sr", "vs", "etc", "e.g", "i.e", "cf", "al", "inc", "ltd",
		"co", "corp", "dept", "est", "fig", "figs", "no", "nos", "vol", "vols",
		"pp", "ed", "eds", "approx", "ca", "jan", "feb", "mar", "apr", "jun",
		"jul", "aug", "sep", "sept", "oct", "nov", "dec", "mt", "ave", "blvd",
	},
	"spanish": {
		"sr", "sra", "srta", "dr", "dra", "ud", "uds", "d", "dña", "etc", "pág",
		"págs", "núm", "art", "cap", "ej", "aprox", "av", "avda", "admón",
		"cía", "gral", "lic", "ing", "prof", "vol", "fig", "tel", "ene", "feb",
		"mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic",
	},
}

var builtinStarters = map[string][]string{
	"english": {"however", "but", "and", "the", "in", "it", "this", "we", "they", "he", "she", "i"},
	"spanish": {"sin", "pero", "el", "la", "en", "los", "las", "esto", "este", "nosotros"},
}

// Default returns a Tokenizer built from the built-in tables for lang
// (a Punkt directory name such as "english").
func Default(lang string) *Tokenizer {
	return New(builtinAbbrevs[lang], builtinStarters[lang])
}
