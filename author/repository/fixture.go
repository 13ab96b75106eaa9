package repository

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/semka95/authors/domain"
)

// Fixture returns a fresh copy of the authors served by lookups, in
// insertion order.
func Fixture() []domain.Author {
	return []domain.Author{
		{
			ID:        "author-1",
			FirstName: "Joshua",
			LastName:  "Bloch",
			BirthDate: civil.Date{Year: 1948, Month: time.December, Day: 20},
		},
		{
			ID:        "author-2",
			FirstName: "Douglas",
			LastName:  "Adams",
			BirthDate: civil.Date{Year: 1953, Month: time.December, Day: 2},
		},
		{
			ID:        "author-3",
			FirstName: "Bill",
			LastName:  "Bryson",
			BirthDate: civil.Date{Year: 1956, Month: time.December, Day: 12},
		},
	}
}
