package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semka95/authors/domain"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all authors",
		Long:  "Lists every author in insertion order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print authors as a JSON array")

	return cmd
}

func runList(cmd *cobra.Command, flags *globalFlags, asJSON bool) error {
	return withUsecase(cmd.Context(), flags, func(uc domain.AuthorUsecase) error {
		return printAuthors(cmd, uc, asJSON)
	})
}

func printAuthors(cmd *cobra.Command, uc domain.AuthorUsecase, asJSON bool) error {
	authors, err := uc.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing authors: %w", err)
	}

	if asJSON {
		return printJSON(cmd, authors)
	}

	out := cmd.OutOrStdout()
	for _, a := range authors {
		fmt.Fprintf(out, "%s\t%s %s\t%s\n", a.ID, a.FirstName, a.LastName, a.BirthDate)
	}

	return nil
}
