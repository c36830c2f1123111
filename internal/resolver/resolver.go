// ABOUTME: Maps free-text exercise references to canonical exercise IDs.
// ABOUTME: Exact matches win; partial matches score token overlap under a policy.
package resolver

import (
	"sort"
	"strings"

	"github.com/harperreed/lift/internal/models"
)

// Status is the terminal state of a lookup.
type Status string

const (
	// StatusResolved means exactly one exercise matched.
	StatusResolved Status = "resolved"
	// StatusNeedsReview means the reference was ambiguous or unmatched
	// and a human should pick from the suggestions.
	StatusNeedsReview Status = "needsReview"
)

// Policy holds the scoring knobs for partial matching. The thresholds are
// deliberately configuration, not constants.
type Policy struct {
	// MinScore is the minimal token-overlap score a candidate needs to
	// be considered at all.
	MinScore float64
	// Margin is how far the top candidate must beat the runner-up to
	// resolve without review.
	Margin float64
}

// DefaultPolicy supplies the thresholds for zero Policy fields.
var DefaultPolicy = Policy{MinScore: 0.5, Margin: 0.15}

// withDefaults fills zero fields independently, so a caller tuning one
// knob keeps the default for the other.
func (p Policy) withDefaults() Policy {
	if p.MinScore == 0 {
		p.MinScore = DefaultPolicy.MinScore
	}
	if p.Margin == 0 {
		p.Margin = DefaultPolicy.Margin
	}
	return p
}

// Suggestion is one ranked candidate for an ambiguous reference.
type Suggestion struct {
	ExerciseID int64   `json:"exercise_id"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
}

// Resolution is the result of a lookup. Exactly one of ExerciseID
// (resolved) or Suggestions (needsReview) is meaningful. Resolve never
// fails for unmatched input; it reports needsReview instead.
type Resolution struct {
	Status      Status       `json:"status"`
	ExerciseID  int64        `json:"exercise_id,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Index holds exercises keyed by id and by every normalized name and
// alias. Collisions are retained as multi-valued entries.
type Index struct {
	byID   map[int64]*models.Exercise
	byName map[string][]int64
}

// BuildIndex indexes canonical names and aliases of every exercise.
func BuildIndex(exercises []*models.Exercise) *Index {
	ix := &Index{
		byID:   make(map[int64]*models.Exercise, len(exercises)),
		byName: make(map[string][]int64),
	}
	for _, e := range exercises {
		ix.byID[e.ID] = e
		ix.addName(Normalize(e.Name), e.ID)
		for _, alias := range e.Aliases {
			ix.addName(Normalize(alias), e.ID)
		}
	}
	return ix
}

func (ix *Index) addName(name string, id int64) {
	if name == "" {
		return
	}
	for _, existing := range ix.byName[name] {
		if existing == id {
			return
		}
	}
	ix.byName[name] = append(ix.byName[name], id)
}

// Exercise returns the indexed exercise for an id, or nil.
func (ix *Index) Exercise(id int64) *models.Exercise {
	return ix.byID[id]
}

// Resolve maps a free-text reference to a canonical exercise id.
func (ix *Index) Resolve(text string, policy Policy) Resolution {
	policy = policy.withDefaults()

	q := Normalize(text)
	if q == "" {
		return Resolution{Status: StatusNeedsReview}
	}

	// Exact normalized-name match.
	if ids := ix.byName[q]; len(ids) > 0 {
		if len(ids) == 1 {
			return Resolution{Status: StatusResolved, ExerciseID: ids[0]}
		}
		suggestions := make([]Suggestion, 0, len(ids))
		for _, id := range ids {
			suggestions = append(suggestions, Suggestion{ExerciseID: id, Name: ix.byID[id].Name, Score: 1})
		}
		rankSuggestions(suggestions)
		return Resolution{Status: StatusNeedsReview, Suggestions: suggestions}
	}

	// Partial match scored by token overlap across names and aliases;
	// each exercise keeps its best-scoring surface form.
	qTokens := strings.Fields(q)
	best := make(map[int64]Suggestion)
	for name, ids := range ix.byName {
		score := overlapScore(qTokens, strings.Fields(name))
		if strings.Contains(name, q) || strings.Contains(q, name) {
			score += 0.25
		}
		if score > 1 {
			score = 1
		}
		if score <= 0 {
			continue
		}
		for _, id := range ids {
			if prev, ok := best[id]; !ok || score > prev.Score {
				best[id] = Suggestion{ExerciseID: id, Name: ix.byID[id].Name, Score: score}
			}
		}
	}

	candidates := make([]Suggestion, 0, len(best))
	for _, s := range best {
		candidates = append(candidates, s)
	}
	rankSuggestions(candidates)

	above := candidates[:0:0]
	for _, c := range candidates {
		if c.Score >= policy.MinScore {
			above = append(above, c)
		}
	}

	switch {
	case len(above) == 1:
		return Resolution{Status: StatusResolved, ExerciseID: above[0].ExerciseID}
	case len(above) > 1 && above[0].Score > above[1].Score+policy.Margin:
		return Resolution{Status: StatusResolved, ExerciseID: above[0].ExerciseID}
	case len(above) > 1:
		return Resolution{Status: StatusNeedsReview, Suggestions: above}
	}

	// Nothing above threshold: best-effort suggestions, may be empty.
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	return Resolution{Status: StatusNeedsReview, Suggestions: candidates}
}

// rankSuggestions orders by score descending, ties broken by shorter
// name, then lexical order.
func rankSuggestions(s []Suggestion) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		if len(s[i].Name) != len(s[j].Name) {
			return len(s[i].Name) < len(s[j].Name)
		}
		return s[i].Name < s[j].Name
	})
}

// overlapScore is shared tokens over the larger token set.
func overlapScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	matched := 0
	for _, t := range b {
		if set[t] {
			matched++
		}
	}
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	return float64(matched) / float64(denom)
}
