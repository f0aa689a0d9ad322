package person

import "strings"

// FilterByGender returns the people whose gender exactly matches one of the
// given values. An empty filter keeps everyone. A value absent from the table
// simply matches nobody.
func FilterByGender(people []Person, genders []string) []Person {
	if len(genders) == 0 {
		return people
	}

	accept := make(map[string]bool, len(genders))
	for _, g := range genders {
		accept[g] = true
	}

	matched := make([]Person, 0, len(people))
	for _, p := range people {
		if accept[p.Gender] {
			matched = append(matched, p)
		}
	}
	return matched
}

// SearchByName returns the people whose name contains the query as a
// case-insensitive substring. An empty query keeps everyone.
func SearchByName(people []Person, query string) []Person {
	if query == "" {
		return people
	}

	q := strings.ToLower(query)
	matched := make([]Person, 0, len(people))
	for _, p := range people {
		if strings.Contains(strings.ToLower(p.Name), q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Genders returns the distinct gender values present, in table order.
func Genders(people []Person) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range people {
		if p.Gender == "" || seen[p.Gender] {
			continue
		}
		seen[p.Gender] = true
		out = append(out, p.Gender)
	}
	return out
}
