package repository

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/semka95/authors/domain"
	"github.com/semka95/authors/validation"
)

// fixtureAuthorRepository serves a fixed list of authors. The list is never
// written after construction, so it is safe for concurrent readers.
type fixtureAuthorRepository struct {
	authors []domain.Author
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewFixtureAuthorRepository will create an object that represent the domain.AuthorRepository interface.
// Every author is validated and ids must be unique; the given slice is copied.
func NewFixtureAuthorRepository(authors []domain.Author, v *validation.AppValidator, logger *zap.Logger, tracer trace.Tracer) (domain.AuthorRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tracer == nil {
		tracer = otel.Tracer("github.com/semka95/authors/author/repository")
	}
	if v == nil {
		var err error
		if v, err = validation.NewAppValidator(); err != nil {
			return nil, fmt.Errorf("can't create validator: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(authors))
	for i, a := range authors {
		if err := v.Check(a); err != nil {
			return nil, fmt.Errorf("author at position %d is not valid: %w", i, err)
		}
		if _, ok := seen[a.ID]; ok {
			return nil, fmt.Errorf("author id %s is duplicated: %w", a.ID, domain.ErrBadParamInput)
		}
		seen[a.ID] = struct{}{}
	}

	list := make([]domain.Author, len(authors))
	copy(list, authors)
	logger.Debug("author fixture loaded", zap.Int("authors", len(list)))

	return &fixtureAuthorRepository{
		authors: list,
		logger:  logger,
		tracer:  tracer,
	}, nil
}

func (r *fixtureAuthorRepository) GetByID(ctx context.Context, id string) (domain.Author, bool) {
	_, span := r.tracer.Start(
		ctx,
		"repository GetByID",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("authorid", id)),
	)
	defer span.End()

	for _, a := range r.authors {
		if a.ID == id {
			span.SetAttributes(attribute.Bool("found", true))
			return a, true
		}
	}

	span.SetAttributes(attribute.Bool("found", false))
	r.logger.Debug("author was not found", zap.String("authorid", id))

	return domain.Author{}, false
}

func (r *fixtureAuthorRepository) List(ctx context.Context) []domain.Author {
	_, span := r.tracer.Start(
		ctx,
		"repository List",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	result := make([]domain.Author, len(r.authors))
	copy(result, r.authors)

	return result
}
