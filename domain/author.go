package domain

//go:generate mockgen -source=author.go -destination=../author/mock/mock_author.go -package=mock

import (
	"context"

	"cloud.google.com/go/civil"
)

// Author represents the Author model
type Author struct {
	ID        string     `json:"id" validate:"required,authorid,max=64"`
	FirstName string     `json:"first_name" validate:"required,max=50"`
	LastName  string     `json:"last_name" validate:"required,max=50"`
	BirthDate civil.Date `json:"birth_date" validate:"required"`
}

// AuthorUsecase represents the Author's usecases
type AuthorUsecase interface {
	GetByID(ctx context.Context, id string) (*Author, error)
	List(ctx context.Context) ([]Author, error)
}

// AuthorRepository represents the Author's repository contract.
// GetByID reports whether an author with exactly the given id exists;
// a miss is not an error.
type AuthorRepository interface {
	GetByID(ctx context.Context, id string) (Author, bool)
	List(ctx context.Context) []Author
}
