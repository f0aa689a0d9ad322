// Package person defines the fixed table of people the network is built over.
package person

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Person represents one row of the people table.
type Person struct {
	// Identity: Name is the Wikipedia article title and the unique key.
	Name        string `json:"name"`
	Birthdate   string `json:"birthdate,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Occupation  string `json:"occupation,omitempty"`

	// Derived link counts, populated after the network is built.
	InDegree  int `json:"in_degree"`
	OutDegree int `json:"out_degree"`
}

// Validation errors.
var (
	ErrEmptyTable      = errors.New("people table has no rows")
	ErrMissingHeader   = errors.New("people table has no header row")
	ErrMissingNameCol  = errors.New("people table has no name column")
	ErrEmptyName       = errors.New("name is required")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrUnknownPerson   = errors.New("person not in table")
	ErrNegativeDegree  = errors.New("degree count cannot be negative")
	ErrBadDegreeNumber = errors.New("degree count is not an integer")
)

// Table is the loaded people table, keyed by name.
type Table struct {
	people []Person
	index  map[string]int
}

// NewTable builds a table from a slice of people.
// Returns an error on empty or duplicate names.
func NewTable(people []Person) (*Table, error) {
	t := &Table{
		people: make([]Person, len(people)),
		index:  make(map[string]int, len(people)),
	}
	copy(t.people, people)

	for i, p := range t.people {
		if p.Name == "" {
			return nil, fmt.Errorf("row %d: %w", i+1, ErrEmptyName)
		}
		if _, exists := t.index[p.Name]; exists {
			return nil, fmt.Errorf("row %d: %w: %s", i+1, ErrDuplicateName, p.Name)
		}
		t.index[p.Name] = i
	}
	return t, nil
}

// Len returns the number of people in the table.
func (t *Table) Len() int {
	return len(t.people)
}

// People returns a copy of all rows in table order.
func (t *Table) People() []Person {
	out := make([]Person, len(t.people))
	copy(out, t.people)
	return out
}

// Names returns all names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.people))
	for i, p := range t.people {
		names[i] = p.Name
	}
	return names
}

// Get returns the person with the given name.
func (t *Table) Get(name string) (Person, bool) {
	i, ok := t.index[name]
	if !ok {
		return Person{}, false
	}
	return t.people[i], true
}

// Contains reports whether the name is a member of the table.
func (t *Table) Contains(name string) bool {
	_, ok := t.index[name]
	return ok
}

// SetDegrees attaches computed link counts to a person.
func (t *Table) SetDegrees(name string, in, out int) error {
	i, ok := t.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPerson, name)
	}
	if in < 0 || out < 0 {
		return ErrNegativeDegree
	}
	t.people[i].InDegree = in
	t.people[i].OutDegree = out
	return nil
}

// Recognized CSV column names (matched case-insensitively).
const (
	colName        = "name"
	colBirthdate   = "birthdate"
	colGender      = "gender"
	colNationality = "nationality"
	colOccupation  = "occupation"
	colInDegree    = "in_degree"
	colOutDegree   = "out_degree"
)

// LoadCSV reads a people table from a CSV file.
// The header row is required; columns are matched by name, case-insensitively,
// in any order. Unrecognized columns are ignored. Rows with an empty name are
// skipped, matching how blank rows in a spreadsheet export behave.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening people table: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a people table from CSV data.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		// Strip a UTF-8 BOM on the first column
		h = strings.TrimPrefix(h, "\uFEFF")
		cols[h] = i
	}
	if _, ok := cols[colName]; !ok {
		return nil, ErrMissingNameCol
	}

	field := func(record []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var people []Person
	seen := make(map[string]int)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		name := field(record, colName)
		if name == "" {
			continue
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("line %d: %w: %s (first seen at line %d)", line, ErrDuplicateName, name, prev)
		}
		seen[name] = line

		p := Person{
			Name:        name,
			Birthdate:   field(record, colBirthdate),
			Gender:      field(record, colGender),
			Nationality: field(record, colNationality),
			Occupation:  field(record, colOccupation),
		}

		if v := field(record, colInDegree); v != "" {
			n, err := parseDegree(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: in_degree: %w", line, err)
			}
			p.InDegree = n
		}
		if v := field(record, colOutDegree); v != "" {
			n, err := parseDegree(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: out_degree: %w", line, err)
			}
			p.OutDegree = n
		}

		people = append(people, p)
	}

	if len(people) == 0 {
		return nil, ErrEmptyTable
	}
	return NewTable(people)
}

// parseDegree parses a non-negative integer degree count.
func parseDegree(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDegreeNumber, s)
	}
	if n < 0 {
		return 0, ErrNegativeDegree
	}
	return n, nil
}
