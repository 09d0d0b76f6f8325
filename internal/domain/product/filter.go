package product

import "strings"

// Filter narrows catalog by category and free-text query.
//
// A non-empty category keeps products whose category contains it, ignoring
// case. A non-blank query keeps products whose name, category or description
// contains it, ignoring case. Both filters apply together. The result is a new
// slice in catalog order; catalog is never modified.
func Filter(catalog []Product, query, category string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(category))

	out := make([]Product, 0, len(catalog))
	for _, p := range catalog {
		if c != "" && !strings.Contains(strings.ToLower(p.Category), c) {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Categories lists the distinct non-empty categories in first-seen order.
func Categories(catalog []Product) []string {
	seen := make(map[string]struct{}, len(catalog))
	out := make([]string, 0)
	for _, p := range catalog {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// SelectByIDs returns the products whose id is in ids, in catalog order.
func SelectByIDs(catalog []Product, ids []string) []Product {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]Product, 0, len(ids))
	for _, p := range catalog {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the product with id from catalog.
func Find(catalog []Product, id string) (Product, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
