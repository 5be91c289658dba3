package data

import "time"

// Entry is the summary record returned by the list query.
type Entry struct {
	ID     string
	Name   string
	Number int
	Image  string
	Types  []string
}

// HasType reports whether label is one of the entry's types. Labels are
// compared verbatim.
func (e Entry) HasType(label string) bool {
	for _, t := range e.Types {
		if t == label {
			return true
		}
	}
	return false
}

type Range struct {
	Minimum string
	Maximum string
}

// Detail is the expanded record fetched for a single entry.
type Detail struct {
	Entry
	Classification string
	Resistant      []string
	Weaknesses     []string
	Height         Range
	Weight         Range
	MaxCP          int
	MaxHP          int
	Evolutions     []Entry
}

type Favorite struct {
	Name      string
	Favorited bool
	UpdatedAt time.Time
}

type Stats struct {
	Favorites int
}
