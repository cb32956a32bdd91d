package gridref

import (
	"regexp"
	"strings"
)

// Canonical encoded forms. The UTM pattern admits the optional space between
// zone digits and band letter that ParseUTM accepts.
var (
	utmPattern  = regexp.MustCompile(`^\d{1,2} ?[C-HJ-NP-X] \d+ \d+$`)
	mgrsPattern = regexp.MustCompile(`^\d{1,2}[C-HJ-NP-X](?:[A-HJ-NP-Z][A-HJ-NP-V](?: (\d{1,5}) (\d{1,5}))?)?$`)
)

// ValidUTM reports whether s looks like a UTM reference string. It is a
// convenience pre-check; ParseUTM performs the authoritative validation.
func ValidUTM(s string) bool {
	return utmPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// ValidMGRS reports whether s looks like an MGRS reference string in
// canonical spacing, with easting and northing digit groups of equal length.
// It is a convenience pre-check; ConvertToUTM performs the authoritative
// validation.
func ValidMGRS(s string) bool {
	groups := mgrsPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if groups == nil {
		return false
	}
	return len(groups[1]) == len(groups[2])
}
