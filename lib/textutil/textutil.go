package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// similarity below which two names are considered unrelated
const canonicalThreshold = 0.92

// suffixes the portal appends inconsistently to manufacturer names
var corporateSuffixes = []string{"ltd", "limited", "pvtltd", "private", "india", "motorco"}

func stripSuffixes(name string) string {
	for changed := true; changed; {
		changed = false
		for _, s := range corporateSuffixes {
			if trimmed := strings.TrimSuffix(name, s); trimmed != name {
				name = trimmed
				changed = true
			}
		}
	}
	return name
}

// Canonicalize maps a scraped name onto the closest entry of a canonical
// list using Jaro-Winkler similarity over normalized, suffix-stripped
// forms. Names that match nothing closely enough are returned verbatim,
// an unknown manufacturer is still a valid group key.
func Canonicalize(name string, canonical []string) string {
	needle := stripSuffixes(NormalizeName(name))
	if needle == "" {
		return name
	}

	var best string
	var bestSimilarity float64
	for _, c := range canonical {
		similarity := matchr.JaroWinkler(needle, stripSuffixes(NormalizeName(c)), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = c
		}
	}

	if bestSimilarity >= canonicalThreshold {
		return best
	}
	return name
}
