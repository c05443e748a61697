package services

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultSimilarityThreshold is the similarity above which two titles are
// treated as near-duplicates.
const DefaultSimilarityThreshold = 0.8

// DuplicateDetector rejects near-duplicate user-generated task and habit
// titles using normalized Levenshtein similarity.
type DuplicateDetector struct {
	threshold float64
}

func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{threshold: DefaultSimilarityThreshold}
}

// Similarity returns a case-insensitive similarity score in [0,1]:
// 1 - distance/maxLen.
func (d *DuplicateDetector) Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// IsDuplicate reports whether candidate is an exact case-insensitive match
// of existing, or similar beyond the threshold.
func (d *DuplicateDetector) IsDuplicate(candidate, existing string) bool {
	if strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(existing)) {
		return true
	}
	return d.Similarity(candidate, existing) > d.threshold
}

// FindMatch checks the candidate title against the global catalog titles
// first, then the user's own prior submissions, returning the first match.
func (d *DuplicateDetector) FindMatch(candidate string, catalogTitles, userTitles []string) (string, bool) {
	for _, title := range catalogTitles {
		if d.IsDuplicate(candidate, title) {
			return title, true
		}
	}
	for _, title := range userTitles {
		if d.IsDuplicate(candidate, title) {
			return title, true
		}
	}
	return "", false
}
