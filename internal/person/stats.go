package person

import "sort"

// CountEntry is one bar of a distribution: a value and how often it occurs.
type CountEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CountByGender returns the gender distribution, most common first.
// People with an empty gender are counted under "Unknown".
func CountByGender(people []Person) []CountEntry {
	return countValues(people, func(p Person) string { return p.Gender })
}

// CountByOccupation returns the occupation distribution, most common first.
// People with an empty occupation are counted under "Unknown".
func CountByOccupation(people []Person) []CountEntry {
	return countValues(people, func(p Person) string { return p.Occupation })
}

func countValues(people []Person, key func(Person) string) []CountEntry {
	counts := make(map[string]int)
	for _, p := range people {
		v := key(p)
		if v == "" {
			v = "Unknown"
		}
		counts[v]++
	}

	entries := make([]CountEntry, 0, len(counts))
	for v, n := range counts {
		entries = append(entries, CountEntry{Value: v, Count: n})
	}

	// Descending by count, ties broken alphabetically for stable output
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	return entries
}
