package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/docxmlext/internal/cli/ui"
	runerrors "github.com/conduit-lang/docxmlext/internal/errors"
	"github.com/conduit-lang/docxmlext/internal/extender"
	"github.com/conduit-lang/docxmlext/internal/watch"
)

func newWatchCommand(a *app) *cobra.Command {
	var (
		flags    runFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <docxml> <manifest> <output>",
		Short: "Re-run extend whenever an input changes",
		Long: `Run extend once, then again every time the documentation XML or one
of the manifests changes on disk, until interrupted.

A failed run is reported and watching continues; the previous output is left
in place.`,
		Example: `  docxmlext watch Acme.Core.xml acme.yaml out/Acme.Core.xml -r mscorlib.yaml`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, a, args)
			if err != nil {
				return err
			}
			inputs := append([]string{opts.DocPath, opts.ManifestPath}, opts.References...)
			if err := checkOutput(opts.OutputPath, inputs); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			noColor := a.noColor || color.NoColor

			var mu sync.Mutex
			run := func() error {
				mu.Lock()
				defer mu.Unlock()
				summary, err := extender.New(opts).Run(cmd.Context())
				printSummary(w, summary, opts.OutputPath, noColor)
				if re, ok := runerrors.As(err); ok {
					fmt.Fprint(w, ui.RunError(re, noColor))
				}
				return err
			}
			_ = run()

			fw, err := watch.NewFileWatcher(inputs, func(changed []string) error {
				fmt.Fprintln(w)
				fmt.Fprint(w, ui.Info("Changed: "+strings.Join(changed, ", "), noColor))
				return run()
			}, watch.Options{Debounce: debounce, Logger: a.logger})
			if err != nil {
				return err
			}

			if err := fw.Start(); err != nil {
				_ = fw.Stop()
				return err
			}

			fmt.Fprintln(w)
			fmt.Fprint(w, ui.Info(fmt.Sprintf("Watching %d files, press Ctrl+C to stop", len(inputs)), noColor))
			<-cmd.Context().Done()
			return fw.Stop()
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-running")
	return cmd
}

// checkOutput rejects an output path that is also an input; each write would
// trigger another run.
func checkOutput(output string, inputs []string) error {
	out, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		if abs == out {
			return fmt.Errorf("output %s is also an input", output)
		}
	}
	return nil
}
