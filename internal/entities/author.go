package entities

import "time"

// Author is embedded inside a book's author list. Authors have no
// identity of their own; order is insertion order and duplicates are
// allowed.
type Author struct {
	Name        string
	DateOfBirth time.Time
	AddedBy     User
}

// NewAuthor builds an author from form input. The birth date must be a
// YYYY-MM-DD string.
func NewAuthor(name, dateOfBirth string) (Author, error) {
	born, err := ParseDate(dateOfBirth)
	if err != nil {
		return Author{}, err
	}
	return Author{Name: name, DateOfBirth: born}, nil
}
