package entities

import "fmt"

// Genre is the closed set of book genres. The stored form is the
// constant's string value, so renaming a constant is a data migration.
type Genre string

const (
	GenreDrama   Genre = "Drama"
	GenreRomance Genre = "Romance"
	GenreCrime   Genre = "Crime"
	GenreScience Genre = "Science"
	GenreSciFi   Genre = "SciFi"
	GenreFantasy Genre = "Fantasy"
	GenreHorror  Genre = "Horror"
)

// Genres lists every valid genre in display order.
func Genres() []Genre {
	return []Genre{
		GenreDrama,
		GenreRomance,
		GenreCrime,
		GenreScience,
		GenreSciFi,
		GenreFantasy,
		GenreHorror,
	}
}

// ParseGenre converts a stored or user-supplied genre name into a Genre.
// Unknown names are an error, never a silent default.
func ParseGenre(name string) (Genre, error) {
	for _, g := range Genres() {
		if string(g) == name {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown genre %q", name)
}

func (g Genre) String() string {
	return string(g)
}
