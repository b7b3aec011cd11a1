package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/docxmlext/internal/augment"
	"github.com/conduit-lang/docxmlext/internal/cli/config"
	"github.com/conduit-lang/docxmlext/internal/cli/ui"
	runerrors "github.com/conduit-lang/docxmlext/internal/errors"
	"github.com/conduit-lang/docxmlext/internal/extender"
)

// runFlags are the flags shared by extend and watch.
type runFlags struct {
	references []string
	workers    int
	indent     int
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.references, "reference", "r", nil, "Manifest of a referenced binary (repeatable)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Worker count (default from config, one per CPU)")
	cmd.Flags().IntVar(&f.indent, "indent", 0, "Indent output by n spaces, 0 keeps the input layout")
}

// options merges the configuration with the flags that were set. Flag
// references are added after the configured ones.
func (f *runFlags) options(cmd *cobra.Command, a *app, args []string) (extender.Options, error) {
	cfg := *a.cfg
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}
	if cmd.Flags().Changed("indent") {
		cfg.Output.Indent = f.indent
	}
	if err := config.Validate(&cfg); err != nil {
		return extender.Options{}, runerrors.Config(err)
	}

	refs := make([]string, 0, len(cfg.References)+len(f.references))
	refs = append(refs, cfg.References...)
	refs = append(refs, f.references...)

	return extender.Options{
		DocPath:      args[0],
		ManifestPath: args[1],
		References:   refs,
		OutputPath:   args[2],
		Workers:      cfg.Workers,
		Indent:       cfg.Output.Indent,
		Logger:       a.logger,
	}, nil
}

func newExtendCommand(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "extend <docxml> <manifest> <output>",
		Short: "Augment a documentation XML file",
		Long: `Augment every member record of a documentation XML file.

Each <member name="..."> record receives one <reflection> element. Records
whose identifier cannot be resolved receive an empty one. The output file is
only written when every input loaded and no record faulted.`,
		Example: `  # Augment with the core library manifest as a reference
  docxmlext extend Acme.Core.xml acme.yaml out/Acme.Core.xml -r mscorlib.yaml

  # Pretty-print the output
  docxmlext extend Acme.Core.xml acme.yaml out.xml --indent 2`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, a, args)
			if err != nil {
				return err
			}
			summary, err := extender.New(opts).Run(cmd.Context())
			printSummary(cmd.OutOrStdout(), summary, opts.OutputPath, a.noColor || color.NoColor)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

var statusOrder = []augment.Status{
	augment.StatusResolved,
	augment.StatusMissingType,
	augment.StatusMissingMember,
	augment.StatusMalformed,
	augment.StatusNotIdentifier,
}

// printSummary renders a run summary.
func printSummary(w io.Writer, s *extender.Summary, output string, noColor bool) {
	if s == nil {
		return
	}

	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Run", s.RunID)
	kv.AddRow("Records", strconv.Itoa(s.Records))
	kv.AddRow("Resolved", strconv.Itoa(s.Resolved()))
	kv.AddRow("Unresolved", strconv.Itoa(s.Unresolved()))
	if s.Skipped > 0 {
		kv.AddRow("Skipped checks", strconv.Itoa(s.Skipped))
	}
	kv.AddRow("Duration", s.Duration.Round(time.Millisecond).String())
	kv.Render()

	if s.Records > 0 {
		fmt.Fprintln(w)
		statuses := ui.NewTable(w, noColor, "Status", "Records")
		for _, st := range statusOrder {
			if n := s.Counts[st]; n > 0 {
				statuses.AddRow(st.String(), strconv.Itoa(n))
			}
		}
		statuses.Render()
	}

	if len(s.Kinds) > 0 {
		fmt.Fprintln(w)
		kinds := make([]string, 0, len(s.Kinds))
		for k := range s.Kinds {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		table := ui.NewTable(w, noColor, "Kind", "Resolved")
		for _, k := range kinds {
			table.AddRow(k, strconv.Itoa(s.Kinds[k]))
		}
		table.Render()
	}

	fmt.Fprintln(w)
	if s.Written {
		ui.WriteSuccess(w, "Wrote "+output, noColor)
	} else {
		fmt.Fprint(w, ui.Warning("Output not written", nil, noColor))
	}
}
