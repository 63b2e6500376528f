package sections

import (
	"strings"

	"github.com/jonathan/resume-coach/internal/types"
)

// Reconcile ensures the answer list for a section is exactly as long as
// its question list, creating it when absent. When a re-analysis
// changes the question set, existing answers are preserved by index
// position: new slots are padded with empty strings and extras are
// truncated. The reconciled list is stored back into answers and
// returned.
func Reconcile(section types.SectionID, questions []string, answers map[types.SectionID][]string) []string {
	current, ok := answers[section]
	if !ok {
		current = make([]string, len(questions))
		answers[section] = current
		return current
	}

	if len(current) == len(questions) {
		return current
	}

	rebuilt := make([]string, len(questions))
	copy(rebuilt, current)
	answers[section] = rebuilt
	return rebuilt
}

// ApplyUpdates overwrites answer slots with non-nil, non-blank values.
// Out-of-range indices are ignored: the list never grows here, only
// Reconcile may resize it.
func ApplyUpdates(answers []string, updates []*string) {
	for i, update := range updates {
		if i >= len(answers) {
			break
		}
		if update == nil {
			continue
		}
		trimmed := strings.TrimSpace(*update)
		if trimmed == "" {
			continue
		}
		answers[i] = trimmed
	}
}

// AllAnswered reports whether a section has a non-empty question list
// with every answer non-blank after trimming.
func AllAnswered(questions, answers []string) bool {
	if len(questions) == 0 || len(answers) != len(questions) {
		return false
	}
	for _, answer := range answers {
		if strings.TrimSpace(answer) == "" {
			return false
		}
	}
	return true
}
