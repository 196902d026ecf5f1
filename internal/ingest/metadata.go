package ingest

import (
	"strings"

	pmferrors "pmfkit/internal/errors"
)

// totalVariableAliases is the priority list of canonical total-mass species
// names. The first alias present among the parsed species wins.
var totalVariableAliases = []string{"PM10", "PM2.5", "PMrecons", "PM10rec", "PM10recons"}

// GuessTotalVariable selects the total-mass species. When no canonical alias
// is present it falls back to the first species containing "PM" and reports
// the choice as ambiguous: guessed is true and the returned error (kind
// AmbiguousMetadata, non-fatal) names the candidates considered. With no
// candidate at all the error is the only result.
func GuessTotalVariable(species []string) (name string, guessed bool, err error) {
	for _, alias := range totalVariableAliases {
		for _, sp := range species {
			if sp == alias {
				return alias, false, nil
			}
		}
	}

	var candidates []string
	for _, sp := range species {
		if strings.Contains(sp, "PM") {
			candidates = append(candidates, sp)
		}
	}
	if len(candidates) == 0 {
		return "", false, pmferrors.Ambiguous("metadata",
			"no total-mass variable among species %v", species)
	}
	return candidates[0], true, pmferrors.Ambiguous("metadata",
		"no canonical total-mass variable; guessed %q from candidates %v", candidates[0], candidates)
}
