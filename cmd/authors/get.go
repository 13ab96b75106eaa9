package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semka95/authors/domain"
)

func newGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print the author with the given id",
		Long:  "Looks up an author by exact, case-sensitive id and prints it as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, flags, args[0])
		},
	}
}

func runGet(cmd *cobra.Command, flags *globalFlags, id string) error {
	return withUsecase(cmd.Context(), flags, func(uc domain.AuthorUsecase) error {
		return printAuthor(cmd, uc, id)
	})
}

func printAuthor(cmd *cobra.Command, uc domain.AuthorUsecase, id string) error {
	a, err := uc.GetByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	return printJSON(cmd, a)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("can't encode output: %w", err)
	}

	return nil
}
