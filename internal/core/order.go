package core

// order.go maintains the content order: the user-controlled sequence of
// category keys and event ids governing final section placement.
//
// The order is an explicit value owned by the session layer and passed in;
// there is no ambient ordering state. Reconcile is a pure merge so the
// session layer can call it after every input change.

// canonicalCategoryOrder is the default placement for course categories
// when they first appear.
var canonicalCategoryOrder = []Category{CategoryAdults, CategoryJuniors, CategoryEvents}

// Reconcile merges an existing content order with the currently known
// categories and event ids. Entries for removed categories or events are
// dropped, surviving entries keep their relative order, newly available
// categories are inserted in canonical order, and new events are appended
// in input order. The result contains every known key exactly once.
func Reconcile(oldOrder []string, categories []Category, eventIDs []string) []string {
	known := make(map[string]bool, len(categories)+len(eventIDs))
	for _, c := range categories {
		known[string(c)] = true
	}
	for _, id := range eventIDs {
		known[id] = true
	}

	var out []string
	seen := make(map[string]bool, len(known))
	for _, key := range oldOrder {
		if known[key] && !seen[key] {
			out = append(out, key)
			seen[key] = true
		}
	}

	for _, c := range canonicalCategoryOrder {
		key := string(c)
		if known[key] && !seen[key] {
			out = append(out, key)
			seen[key] = true
		}
	}

	for _, id := range eventIDs {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}

	return out
}

// MoveUp swaps the entry at position i with its predecessor, returning a
// new slice. Out-of-range positions return the input unchanged.
func MoveUp(order []string, i int) []string {
	if i <= 0 || i >= len(order) {
		return order
	}
	out := append([]string(nil), order...)
	out[i-1], out[i] = out[i], out[i-1]
	return out
}

// MoveDown swaps the entry at position i with its successor, returning a
// new slice. Out-of-range positions return the input unchanged.
func MoveDown(order []string, i int) []string {
	if i < 0 || i >= len(order)-1 {
		return order
	}
	out := append([]string(nil), order...)
	out[i], out[i+1] = out[i+1], out[i]
	return out
}
