package grocery

import (
	"strings"
)

// Item is a single consolidated grocery entry. Quantity and the nutrition
// fields stay free-form strings because the model reports them in mixed
// units ("2 lbs", "25g", "165"). Link is a pointer so a null from the model
// round-trips as explicit absence rather than an empty string.
type Item struct {
	Item     string  `json:"item"`
	Quantity string  `json:"quantity"`
	Category string  `json:"category"`
	Link     *string `json:"link"`
	Protein  string  `json:"protein,omitempty"`
	Carbs    string  `json:"carbs,omitempty"`
	Fats     string  `json:"fats,omitempty"`
	Cals     string  `json:"cals,omitempty"`
}

// List is an ordered collection of grocery items.
type List []Item

// mergeKey identifies entries that refer to the same grocery. Matching is
// case-insensitive on the trimmed item name, within the same category.
func mergeKey(it Item) string {
	name := strings.ToLower(strings.TrimSpace(it.Item))
	category := strings.ToLower(strings.TrimSpace(it.Category))
	return category + "\x00" + name
}

// Consolidate merges duplicate entries in the list. The first occurrence of
// an (item, category) pair keeps its position and name; quantities of later
// duplicates are appended with " + "; for the link and nutrition fields the
// first non-empty value wins. A list without duplicates comes back unchanged.
func Consolidate(items List) List {
	if len(items) == 0 {
		return items
	}

	out := make(List, 0, len(items))
	index := make(map[string]int, len(items))

	for _, it := range items {
		key := mergeKey(it)
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, it)
			continue
		}

		kept := &out[i]
		if q := strings.TrimSpace(it.Quantity); q != "" {
			if kept.Quantity == "" {
				kept.Quantity = q
			} else if q != strings.TrimSpace(kept.Quantity) {
				kept.Quantity = kept.Quantity + " + " + q
			}
		}
		if kept.Link == nil {
			kept.Link = it.Link
		}
		if kept.Protein == "" {
			kept.Protein = it.Protein
		}
		if kept.Carbs == "" {
			kept.Carbs = it.Carbs
		}
		if kept.Fats == "" {
			kept.Fats = it.Fats
		}
		if kept.Cals == "" {
			kept.Cals = it.Cals
		}
	}

	return out
}

// GroupByCategory splits the list into per-category sublists, preserving the
// order of items within each category. Categories returns the category names
// in first-appearance order so callers can render a stable grouping.
func GroupByCategory(items List) (map[string]List, []string) {
	grouped := make(map[string]List)
	var order []string

	for _, it := range items {
		category := strings.TrimSpace(it.Category)
		if category == "" {
			category = "Other"
		}
		if _, ok := grouped[category]; !ok {
			order = append(order, category)
		}
		grouped[category] = append(grouped[category], it)
	}

	return grouped, order
}
