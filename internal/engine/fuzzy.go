package engine

import (
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match tiers, best first. A rank's integer part is its tier; the "matches"
// tier carries a fractional closeness score.
const (
	RankCaseSensitiveEqual = 7.0
	RankEqual              = 6.0
	RankStartsWith         = 5.0
	RankWordStartsWith     = 4.0
	RankContains           = 3.0
	RankAcronym            = 2.0
	RankMatches            = 1.0
	RankNoMatch            = 0.0
)

// RankInfo is the result of ranking one value against a query
type RankInfo struct {
	Rank   float64
	Passed bool
}

// CompareRanks orders better ranks first
func CompareRanks(a, b RankInfo) int {
	switch {
	case a.Rank == b.Rank:
		return 0
	case a.Rank > b.Rank:
		return -1
	default:
		return 1
	}
}

var similarity = metrics.NewJaroWinkler()

// RankItem ranks value against query. List values rank by their best element.
func RankItem(value interface{}, query string) RankInfo {
	best := RankNoMatch
	for _, item := range toList(value) {
		if r := matchRanking(toString(item), query); r > best {
			best = r
		}
	}
	return RankInfo{Rank: best, Passed: best >= RankMatches}
}

func matchRanking(testString, stringToRank string) float64 {
	testString = foldDiacritics(testString)
	stringToRank = foldDiacritics(stringToRank)

	if len(stringToRank) > len(testString) {
		return RankNoMatch
	}
	if testString == stringToRank {
		return RankCaseSensitiveEqual
	}

	testString = strings.ToLower(testString)
	stringToRank = strings.ToLower(stringToRank)

	switch {
	case testString == stringToRank:
		return RankEqual
	case strings.HasPrefix(testString, stringToRank):
		return RankStartsWith
	case strings.Contains(testString, " "+stringToRank):
		return RankWordStartsWith
	case strings.Contains(testString, stringToRank):
		return RankContains
	case len([]rune(stringToRank)) == 1:
		return RankNoMatch
	case strings.Contains(acronym(testString), stringToRank):
		return RankAcronym
	}
	return closeness(testString, stringToRank)
}

// closeness ranks an in-order (subsequence) match, scored by Jaro-Winkler
// similarity so tighter matches rank higher within the tier
func closeness(testString, stringToRank string) float64 {
	pos := 0
	ts := []rune(testString)
	for _, r := range stringToRank {
		found := false
		for pos < len(ts) {
			if ts[pos] == r {
				found = true
				pos++
				break
			}
			pos++
		}
		if !found {
			return RankNoMatch
		}
	}
	return RankMatches + strutil.Similarity(testString, stringToRank, similarity)/2
}

func acronym(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		for _, part := range strings.Split(word, "-") {
			if part != "" {
				r := []rune(part)
				b.WriteRune(r[0])
			}
		}
	}
	return b.String()
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
