package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/minij/format"
	"github.com/dhamidi/minij/minij/grammar"
	"github.com/dhamidi/minij/minij/lex"
	"github.com/dhamidi/minij/minij/parser"
)

func newParseCmd(flags *globalFlags) *cobra.Command {
	var outputFormat string
	var color bool
	var includePositions bool
	var start string
	var trace bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and dump its parse tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if !cmd.Flags().Changed("format") {
				outputFormat = flags.config.Format
			}

			enc, err := format.NewTreeEncoder(outputFormat, cmd.OutOrStdout(), format.TreeOptions{
				Color:     color,
				Positions: includePositions,
			})
			if err != nil {
				return err
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			tokens, err := lex.Tokenize(data, filename)
			if err != nil {
				return err
			}

			opts := []parser.Option{parser.WithFile(filename)}
			if start != "" {
				label, ok := grammar.ParseLabel(start)
				if !ok {
					return fmt.Errorf("unknown non-terminal %q", start)
				}
				opts = append(opts, parser.WithStart(label))
			}
			if trace {
				opts = append(opts, parser.WithTracer(commonlog.GetLogger("minij.parser")))
			}

			tree, err := parser.Parse(tokens, opts...)
			if err != nil {
				return err
			}

			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", fmt.Sprintf("output format %v", format.TreeFormats()))
	cmd.Flags().BoolVar(&color, "color", false, "color the tree output")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source positions in the tree output")
	cmd.Flags().StringVar(&start, "start", "", "derive from this non-terminal instead of program")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every expansion and match at debug level (use with -vv)")

	return cmd
}
