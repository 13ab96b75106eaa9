package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/golang/mock/gomock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semka95/authors/author/mock"
	"github.com/semka95/authors/domain"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	out := new(bytes.Buffer)
	c := &cobra.Command{}
	c.SetOut(out)
	c.SetContext(context.Background())

	return c, out
}

func TestPrintAuthor(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	uc := mock.NewMockAuthorUsecase(controller)
	tAuthor := &domain.Author{
		ID:        "author-9",
		FirstName: "Terry",
		LastName:  "Pratchett",
		BirthDate: civil.Date{Year: 1948, Month: 4, Day: 28},
	}

	t.Run("success", func(t *testing.T) {
		uc.EXPECT().GetByID(gomock.Any(), tAuthor.ID).Return(tAuthor, nil)
		c, out := newTestCmd()

		err := printAuthor(c, uc, tAuthor.ID)

		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"author-9","first_name":"Terry","last_name":"Pratchett","birth_date":"1948-04-28"}`, out.String())
	})

	t.Run("not found", func(t *testing.T) {
		uc.EXPECT().GetByID(gomock.Any(), "author-4").
			Return(nil, fmt.Errorf("author author-4 was not found: %w", domain.ErrNotFound))
		c, out := newTestCmd()

		err := printAuthor(c, uc, "author-4")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, out.String())
	})
}

func TestPrintAuthors(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	uc := mock.NewMockAuthorUsecase(controller)

	t.Run("text", func(t *testing.T) {
		uc.EXPECT().List(gomock.Any()).Return([]domain.Author{
			{ID: "author-9", FirstName: "Terry", LastName: "Pratchett", BirthDate: civil.Date{Year: 1948, Month: 4, Day: 28}},
		}, nil)
		c, out := newTestCmd()

		err := printAuthors(c, uc, false)

		require.NoError(t, err)
		assert.Equal(t, "author-9\tTerry Pratchett\t1948-04-28\n", out.String())
	})

	t.Run("empty json", func(t *testing.T) {
		uc.EXPECT().List(gomock.Any()).Return([]domain.Author{}, nil)
		c, out := newTestCmd()

		err := printAuthors(c, uc, true)

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, out.String())
	})

	t.Run("usecase error", func(t *testing.T) {
		uc.EXPECT().List(gomock.Any()).Return(nil, context.DeadlineExceeded)
		c, out := newTestCmd()

		err := printAuthors(c, uc, false)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.EqualError(t, err, "listing authors: context deadline exceeded")
		assert.Empty(t, out.String())
	})
}
