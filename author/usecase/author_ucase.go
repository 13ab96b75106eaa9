package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/semka95/authors/domain"
	"github.com/semka95/authors/metrics"
)

type authorUsecase struct {
	authorRepo     domain.AuthorRepository
	contextTimeout time.Duration
	tracer         trace.Tracer
	lookups        *metrics.LookupRecorder
}

// NewAuthorUsecase will create new an authorUsecase object representation of domain.AuthorUsecase interface
func NewAuthorUsecase(a domain.AuthorRepository, timeout time.Duration, tracer trace.Tracer, lookups *metrics.LookupRecorder) domain.AuthorUsecase {
	return &authorUsecase{
		authorRepo:     a,
		contextTimeout: timeout,
		tracer:         tracer,
		lookups:        lookups,
	}
}

func (uc *authorUsecase) GetByID(c context.Context, id string) (*domain.Author, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase GetByID",
		trace.WithAttributes(
			attribute.String("authorid", id)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup aborted")
		return nil, fmt.Errorf("author %s lookup aborted: %w", id, err)
	}

	start := time.Now()
	a, ok := uc.authorRepo.GetByID(ctx, id)
	uc.lookups.Record(ctx, ok, time.Since(start))

	if !ok {
		err := fmt.Errorf("author %s was not found: %w", id, domain.ErrNotFound)
		span.RecordError(err)
		return nil, err
	}

	return &a, nil
}

func (uc *authorUsecase) List(c context.Context) ([]domain.Author, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase List",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list aborted")
		return nil, fmt.Errorf("author list aborted: %w", err)
	}

	list := uc.authorRepo.List(ctx)
	span.SetAttributes(attribute.Int("authors", len(list)))

	return list, nil
}
