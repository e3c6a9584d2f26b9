// Package favorites keeps the ordered, duplicate-free list of favorite cities.
package favorites

// Set is an immutable ordered set of city names in first-insertion order.
// The zero value is an empty set.
type Set struct {
	cities []string
}

// New builds a set from cities, dropping repeated names.
func New(cities ...string) Set {
	var s Set
	for _, c := range cities {
		if !s.Contains(c) {
			s.cities = append(s.cities, c)
		}
	}
	return s
}

// Toggle returns a new set with city removed if present, appended otherwise.
// Names are compared exactly. The receiver is left untouched.
func (s Set) Toggle(city string) Set {
	if s.Contains(city) {
		out := make([]string, 0, len(s.cities))
		for _, c := range s.cities {
			if c != city {
				out = append(out, c)
			}
		}
		return Set{cities: out}
	}

	out := make([]string, len(s.cities), len(s.cities)+1)
	copy(out, s.cities)
	return Set{cities: append(out, city)}
}

// Contains reports whether city is in the set.
func (s Set) Contains(city string) bool {
	for _, c := range s.cities {
		if c == city {
			return true
		}
	}
	return false
}

// Cities returns a copy of the members in order.
func (s Set) Cities() []string {
	out := make([]string, len(s.cities))
	copy(out, s.cities)
	return out
}

// At returns the city at position i.
func (s Set) At(i int) (string, bool) {
	if i < 0 || i >= len(s.cities) {
		return "", false
	}
	return s.cities[i], true
}

func (s Set) Len() int {
	return len(s.cities)
}
