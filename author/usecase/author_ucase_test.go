package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/semka95/authors/author/mock"
	"github.com/semka95/authors/author/repository"
	"github.com/semka95/authors/author/usecase"
	"github.com/semka95/authors/domain"
	"github.com/semka95/authors/metrics"
)

var tracer = sdktrace.NewTracerProvider().Tracer("")

func TestAuthorUsecase_GetByID(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	tAuthor := repository.Fixture()[0]

	repo := mock.NewMockAuthorRepository(controller)
	uc := usecase.NewAuthorUsecase(repo, 10*time.Second, tracer, nil)

	t.Run("get author success", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), tAuthor.ID).Return(tAuthor, true)

		result, err := uc.GetByID(context.Background(), tAuthor.ID)

		require.NoError(t, err)
		assert.EqualValues(t, &tAuthor, result)
	})

	t.Run("get not existed author", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), "Author-1").Return(domain.Author{}, false)

		result, err := uc.GetByID(context.Background(), "Author-1")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "author Author-1 was not found: your requested item is not found")
		assert.Nil(t, result)
	})

	t.Run("get empty id", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), "").Return(domain.Author{}, false)

		result, err := uc.GetByID(context.Background(), "")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, result)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := uc.GetByID(ctx, tAuthor.ID)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})

	t.Run("context carries timeout", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), tAuthor.ID).DoAndReturn(
			func(ctx context.Context, id string) (domain.Author, bool) {
				_, ok := ctx.Deadline()
				assert.True(t, ok)
				return tAuthor, true
			})

		_, err := uc.GetByID(context.Background(), tAuthor.ID)
		require.NoError(t, err)
	})
}

func TestAuthorUsecase_GetByIDMetrics(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	reader := sdkmetric.NewManualReader()
	lookups, err := metrics.NewLookupRecorder(
		metrics.WithMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))),
	)
	require.NoError(t, err)

	tAuthor := repository.Fixture()[1]
	repo := mock.NewMockAuthorRepository(controller)
	uc := usecase.NewAuthorUsecase(repo, 10*time.Second, tracer, lookups)

	repo.EXPECT().GetByID(gomock.Any(), tAuthor.ID).Return(tAuthor, true).Times(2)
	repo.EXPECT().GetByID(gomock.Any(), "none").Return(domain.Author{}, false)

	_, err = uc.GetByID(context.Background(), tAuthor.ID)
	require.NoError(t, err)
	_, err = uc.GetByID(context.Background(), tAuthor.ID)
	require.NoError(t, err)
	_, err = uc.GetByID(context.Background(), "none")
	require.ErrorIs(t, err, domain.ErrNotFound)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byOutcome := make(map[string]int64)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != "author_lookups_total" {
			continue
		}
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		for _, dp := range sum.DataPoints {
			v, _ := dp.Attributes.Value(metrics.OutcomeLabel)
			byOutcome[v.AsString()] = dp.Value
		}
	}
	assert.Equal(t, map[string]int64{metrics.OutcomeHit: 2, metrics.OutcomeMiss: 1}, byOutcome)
}

func TestAuthorUsecase_GetByIDSpan(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	repo := mock.NewMockAuthorRepository(controller)
	uc := usecase.NewAuthorUsecase(repo, 10*time.Second, tp.Tracer(""), nil)

	repo.EXPECT().GetByID(gomock.Any(), "author-5").Return(domain.Author{}, false)
	_, err := uc.GetByID(context.Background(), "author-5")
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "usecase GetByID", spans[0].Name())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestAuthorUsecase_List(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	tAuthors := repository.Fixture()

	repo := mock.NewMockAuthorRepository(controller)
	uc := usecase.NewAuthorUsecase(repo, 10*time.Second, tracer, nil)

	t.Run("list success", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any()).Return(tAuthors)

		result, err := uc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, tAuthors, result)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := uc.List(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})
}
