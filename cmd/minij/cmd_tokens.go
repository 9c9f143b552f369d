package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/minij/minij/lex"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			tokens, err := lex.Tokenize(data, filename)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintf(out, "%d:%d\t%s\t%s\n", tok.Span.Start.Line, tok.Span.Start.Column, tok.Kind, tok.Literal)
			}
			return nil
		},
	}
}
