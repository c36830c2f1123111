// ABOUTME: Deterministic normalization of free-text exercise references.
// ABOUTME: Abbreviations and compound forms are data tables, not code order.
package resolver

import "strings"

// aliasClass maps one surface form to its canonical expansion. Entries
// apply in declaration order, making resolution priority a data artifact.
type aliasClass struct {
	match     string
	canonical string
}

// abbreviations expand gym shorthand. Tokens are singularized first, so
// "dbs" reaches this table as "db".
var abbreviations = []aliasClass{
	{"db", "dumbbell"},
	{"bb", "barbell"},
	{"kb", "kettlebell"},
	{"bw", "bodyweight"},
	{"ohp", "overhead press"},
	{"rdl", "romanian deadlift"},
	{"sldl", "stiff leg deadlift"},
	{"bss", "bulgarian split squat"},
	{"inc", "incline"},
	{"dec", "decline"},
	{"alt", "alternating"},
}

// compounds regularize colloquial one-word forms into canonical two-word
// forms.
var compounds = []aliasClass{
	{"pushup", "push up"},
	{"pullup", "pull up"},
	{"chinup", "chin up"},
	{"situp", "sit up"},
	{"stepup", "step up"},
	{"pressup", "press up"},
	{"deadbug", "dead bug"},
}

// Normalize lowercases, trims, expands known abbreviations, and
// regularizes morphological variants of an exercise reference. It is
// deterministic, side-effect-free, and idempotent.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// Collapse punctuation to spaces so "push-up" and "push up" agree.
	var cleaned strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			cleaned.WriteRune(r)
		default:
			cleaned.WriteByte(' ')
		}
	}

	var out []string
	for _, tok := range strings.Fields(cleaned.String()) {
		tok = singularize(tok)
		tok = expand(abbreviations, tok)
		tok = expand(compounds, tok)
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

// expand replaces a token with its canonical form when the table knows it.
func expand(table []aliasClass, tok string) string {
	for _, a := range table {
		if a.match == tok {
			return a.canonical
		}
	}
	return tok
}

// singularize strips plural suffixes. Very short tokens and words ending
// in "ss" (press, cross) are left alone.
func singularize(tok string) string {
	if len(tok) <= 2 {
		return tok
	}
	switch {
	case strings.HasSuffix(tok, "ss"):
		return tok
	case strings.HasSuffix(tok, "ches"),
		strings.HasSuffix(tok, "shes"),
		strings.HasSuffix(tok, "xes"),
		strings.HasSuffix(tok, "sses"):
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "s"):
		return tok[:len(tok)-1]
	}
	return tok
}
