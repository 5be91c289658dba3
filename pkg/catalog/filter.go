package catalog

import (
	"strings"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/sahilm/fuzzy"
)

// Filter returns the entries matching c, in their original order. An entry
// matches when its name contains c.Search ignoring case and, if c.Type is
// set, one of its types equals c.Type exactly. The result is never nil.
func Filter(entries []data.Entry, c Criteria) []data.Entry {
	out := make([]data.Entry, 0, len(entries))
	term := strings.ToLower(c.Search)
	for _, e := range entries {
		if term != "" && !strings.Contains(strings.ToLower(e.Name), term) {
			continue
		}
		if c.Type != "" && !e.HasType(c.Type) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Types lists the distinct type labels in first-seen order.
func Types(entries []data.Entry) []string {
	seen := make(map[string]struct{})
	types := []string{}
	for _, e := range entries {
		for _, t := range e.Types {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}
	return types
}

type entryNames []data.Entry

func (n entryNames) String(i int) string {
	return strings.ToLower(n[i].Name)
}

func (n entryNames) Len() int {
	return len(n)
}

// Suggest returns up to limit names that fuzzily resemble term, best first.
// Used for "did you mean" hints when Filter comes back empty.
func Suggest(entries []data.Entry, term string, limit int) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || limit <= 0 {
		return []string{}
	}

	matches := fuzzy.FindFrom(term, entryNames(entries))
	if len(matches) > limit {
		matches = matches[:limit]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = entries[m.Index].Name
	}
	return names
}
