package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/docxmlext/internal/augment"
	"github.com/conduit-lang/docxmlext/internal/cli/ui"
	"github.com/conduit-lang/docxmlext/internal/docid"
	runerrors "github.com/conduit-lang/docxmlext/internal/errors"
	"github.com/conduit-lang/docxmlext/internal/metadata"
)

func newInspectCommand(a *app) *cobra.Command {
	var (
		references []string
		indent     int
	)

	cmd := &cobra.Command{
		Use:   "inspect <manifest> <identifier>...",
		Short: "Print the reflection fragment of identifiers",
		Long: `Resolve documentation identifiers against a manifest and print the
<reflection> element extend would attach to each of them.

Unresolved identifiers are reported with their status; for unknown types the
closest type names in the loaded manifests are suggested.`,
		Example: `  docxmlext inspect acme.yaml T:Acme.Foo 'M:Acme.Foo.Run(System.Int32)' -r mscorlib.yaml`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := append([]string{args[0]}, a.cfg.References...)
			paths = append(paths, references...)

			manifests := make([]*metadata.Manifest, len(paths))
			for i, path := range paths {
				m, err := metadata.LoadFile(path)
				if err != nil {
					return runerrors.MetadataLoad(path, err)
				}
				manifests[i] = m
			}

			store := metadata.NewStore(manifests[0], manifests[1:]...)
			inspectIDs(cmd.OutOrStdout(), store, args[1:], indent, a.noColor || color.NoColor)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&references, "reference", "r", nil, "Manifest of a referenced binary (repeatable)")
	cmd.Flags().IntVar(&indent, "indent", 2, "Indent fragments by n spaces")
	return cmd
}

func inspectIDs(w io.Writer, store *metadata.Store, ids []string, indent int, noColor bool) {
	augmenter := augment.New(store)
	for i, id := range ids {
		if i > 0 {
			fmt.Fprintln(w)
		}
		ui.Header(w, id, noColor)

		fragment, out := augmenter.Augment(id)
		writeFragment(w, fragment, indent)

		if len(out.Skipped) > 0 {
			fmt.Fprint(w, ui.Info("Unchecked placeholders: "+strings.Join(out.Skipped, ", "), noColor))
		}
		switch out.Status {
		case augment.StatusResolved:
		case augment.StatusMissingType:
			owner := ownerName(id)
			fmt.Fprint(w, ui.TypeNotFoundError(owner, ui.FindSimilar(owner, store.TypeNames(), nil), noColor))
		default:
			fmt.Fprint(w, ui.Warning(fmt.Sprintf("%s: %s", out.Status, id), nil, noColor))
		}
	}
}

// writeFragment prints fragment as a standalone element.
func writeFragment(w io.Writer, fragment *etree.Element, indent int) {
	doc := etree.NewDocument()
	doc.SetRoot(fragment)
	if indent > 0 {
		doc.Indent(indent)
	}
	_, _ = doc.WriteTo(w)
	if indent <= 0 {
		fmt.Fprintln(w)
	}
}

func ownerName(id string) string {
	ref, err := docid.Parse(id)
	if err != nil {
		return id
	}
	return ref.Owner
}
