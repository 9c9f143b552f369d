package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/minij/project"
)

func newCheckCmd() *cobra.Command {
	var quiet bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Parse every source file of a project and report syntax errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			proj, err := project.LoadFrom(dir)
			if err != nil {
				return fmt.Errorf("load project: %w", err)
			}

			results, err := proj.Check()
			if err != nil {
				return fmt.Errorf("check project: %w", err)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.OK() {
					if !quiet {
						fmt.Fprintf(out, "%s: ok\n", r.Path)
					}
					continue
				}
				failed++
				fmt.Fprintln(out, r.Err)
			}

			if !quiet {
				fmt.Fprintf(out, "%d files checked, %d failed\n", len(results), failed)
			}
			if watch {
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()
				return proj.Watch(ctx, func(r project.Result) {
					if r.OK() {
						fmt.Fprintf(out, "%s: ok\n", r.Path)
					} else {
						fmt.Fprintln(out, r.Err)
					}
				})
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files have errors", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and re-check files as they change")

	return cmd
}
