package catalog

import (
	"sort"
	"strings"

	"catalog-service/internal/model"

	"github.com/agnivade/levenshtein"
)

const (
	// searchCutoff excludes low-confidence matches from catalog search
	// entirely: below it a product is "no match", not "weak match".
	searchCutoff = 0.65
	// suggestCutoff is the looser bound used for autocomplete.
	suggestCutoff = 0.60

	// Field weights order ranked results. A color or subcategory match of
	// equal quality always ranks below a name match.
	colorWeight       = 0.5
	subcategoryWeight = 0.25
)

// similarity maps edit distance between two strings to [0,1]; 1 is an exact
// match.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// fieldScore scores a lowercased term against one field: the whole field,
// any single token, or a substring hit, whichever is strongest.
func fieldScore(term, field string) float64 {
	field = strings.ToLower(strings.TrimSpace(field))
	if term == "" || field == "" {
		return 0
	}
	best := similarity(term, field)
	if strings.Contains(field, term) {
		if s := 0.7 + 0.3*float64(len(term))/float64(len(field)); s > best {
			best = s
		}
	}
	for _, token := range strings.Fields(field) {
		if s := similarity(term, token); s > best {
			best = s
		}
	}
	return best
}

// scoreSearch scores a product for catalog search over name (primary) and
// colors (secondary). ok reports whether any field clears the cutoff.
func scoreSearch(term string, p model.Product) (float64, bool) {
	name := fieldScore(term, p.Name)
	var color float64
	for _, c := range p.Colors {
		if s := fieldScore(term, c); s > color {
			color = s
		}
	}
	score := name
	if w := color * colorWeight; w > score {
		score = w
	}
	return score, name >= searchCutoff || color >= searchCutoff
}

// scoreSuggestion scores a product for autocomplete over name, colors and
// subcategory.
func scoreSuggestion(term string, p model.Product) (float64, bool) {
	name := fieldScore(term, p.Name)
	var color float64
	for _, c := range p.Colors {
		if s := fieldScore(term, c); s > color {
			color = s
		}
	}
	sub := fieldScore(term, p.Subcategory)

	score := name
	if w := color * colorWeight; w > score {
		score = w
	}
	if w := sub * subcategoryWeight; w > score {
		score = w
	}
	return score, name >= suggestCutoff || color >= suggestCutoff || sub >= suggestCutoff
}

type match struct {
	product model.Product
	score   float64
}

// rank filters candidates through score and orders them best first.
// Candidates must arrive in storage order; the stable sort preserves that
// order between equal scores, so repeated calls return identical rankings.
func rank(candidates []model.Product, score func(model.Product) (float64, bool)) []model.Product {
	matches := make([]match, 0, len(candidates))
	for _, p := range candidates {
		if s, ok := score(p); ok {
			matches = append(matches, match{product: p, score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	ranked := make([]model.Product, len(matches))
	for i, m := range matches {
		ranked[i] = m.product
	}
	return ranked
}
