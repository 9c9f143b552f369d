package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/minij/format"
	"github.com/dhamidi/minij/minij/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the grammar and its parsing table",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarTableCmd())
	cmd.AddCommand(newGrammarEBNFCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var ebnfFile string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build and validate the parsing table and verify the EBNF description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			table, err := grammar.Build()
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("parsing table is invalid")
			}
			fmt.Fprintf(out, "table: %d entries for %d non-terminals, no conflicts\n", table.Len(), len(grammar.Labels()))

			var g ebnf.Grammar
			if ebnfFile != "" {
				f, openErr := os.Open(ebnfFile)
				if openErr != nil {
					return fmt.Errorf("open file: %w", openErr)
				}
				defer f.Close()
				g, err = grammar.ParseEBNF(ebnfFile, f)
			} else {
				ebnfFile = "minij.ebnf (embedded)"
				g, err = grammar.EBNF()
			}
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("EBNF description is invalid")
			}
			if err := grammar.CheckEBNF(g); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("EBNF description does not match the grammar")
			}
			fmt.Fprintf(out, "ebnf: %s verified, %d productions\n", ebnfFile, len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&ebnfFile, "ebnf", "", "verify this EBNF file instead of the embedded description")

	return cmd
}

func newGrammarTableCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Dump the parsing table with FIRST and FOLLOW sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.NewTableEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			table, err := grammar.Build()
			if err != nil {
				return fmt.Errorf("build parsing table: %w", err)
			}
			if err := enc.Encode(table); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", fmt.Sprintf("output format %v", format.TableFormats()))

	return cmd
}

func newGrammarEBNFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ebnf",
		Short: "Print the EBNF description of the concrete syntax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.EBNFSource())
			return err
		},
	}
}

// printErrors writes one line per error, flattening joined errors and the
// error lists reported by the EBNF parser.
func printErrors(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printErrors(w, e)
		}
		return
	}
	if inner := errors.Unwrap(err); inner != nil && reflect.ValueOf(inner).Kind() == reflect.Slice {
		printErrors(w, inner)
		return
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
		return
	}
	fmt.Fprintln(w, err)
}
