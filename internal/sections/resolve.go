// Package sections provides section-name resolution and the per-section
// answer ledger that keeps user answers aligned with recommended questions.
package sections

import (
	"strings"

	"github.com/jonathan/resume-coach/internal/types"
)

// similarityThreshold is the strict lower bound for fuzzy matching.
// A candidate is accepted only when its similarity ratio exceeds it.
const similarityThreshold = 0.6

// aliases maps common variations and shorthand to canonical section names.
var aliases = map[string]types.SectionID{
	"skill":          types.SectionSkills,
	"experience":     types.SectionExperiences,
	"exp":            types.SectionExperiences,
	"work":           types.SectionExperiences,
	"edu":            types.SectionEducation,
	"school":         types.SectionEducation,
	"project":        types.SectionProjects,
	"cert":           types.SectionCertificates,
	"certs":          types.SectionCertificates,
	"certification":  types.SectionCertificates,
	"pub":            types.SectionPublications,
	"publication":    types.SectionPublications,
	"papers":         types.SectionPublications,
	"lang":           types.SectionLanguages,
	"language":       types.SectionLanguages,
	"rec":            types.SectionRecommendations,
	"recommendation": types.SectionRecommendations,
	"refs":           types.SectionRecommendations,
	"references":     types.SectionRecommendations,
	"contacts":       types.SectionContact,
	"about":          types.SectionSummary,
	"other":          types.SectionCustom,
	"additional":     types.SectionCustom,
}

// Resolve maps a free-text section name to one of the candidate
// sections, tolerating aliases and typos. Resolution is deterministic
// for a given candidate ordering: exact match first, then the alias
// table, then the best similarity ratio above the threshold (ties keep
// the first-seen maximum). Returns false when nothing matches.
func Resolve(rawName string, candidates []types.SectionID) (types.SectionID, bool) {
	name := strings.ToLower(strings.TrimSpace(rawName))
	if name == "" || len(candidates) == 0 {
		return "", false
	}

	inCandidates := func(id types.SectionID) bool {
		for _, c := range candidates {
			if c == id {
				return true
			}
		}
		return false
	}

	if inCandidates(types.SectionID(name)) {
		return types.SectionID(name), true
	}

	if canonical, ok := aliases[name]; ok && inCandidates(canonical) {
		return canonical, true
	}

	var best types.SectionID
	bestScore := similarityThreshold
	for _, candidate := range candidates {
		if score := similarity(name, string(candidate)); score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// similarity computes the Ratcliff/Obershelp ratio between two strings:
// twice the number of matching characters over the total length, where
// matches are found by recursively splitting around the longest common
// substring. Result is in [0,1].
func similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 2 * float64(matchingChars(a, b)) / float64(len(a)+len(b))
}

// matchingChars counts characters matched by the longest common
// substring plus, recursively, the matches in the pieces on either
// side of it.
func matchingChars(a, b string) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	count := size
	count += matchingChars(a[:ai], b[:bi])
	count += matchingChars(a[ai+size:], b[bi+size:])
	return count
}

// longestCommonSubstring returns the start offsets and length of the
// longest substring common to a and b. Earliest occurrence wins ties.
func longestCommonSubstring(a, b string) (ai, bi, size int) {
	// prev[j] holds the common-suffix length ending at a[i-1], b[j-1].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
