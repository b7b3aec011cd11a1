// Package extender runs one augmentation pass: it loads the documentation
// XML and the metadata manifests, augments every member record on a worker
// pool and writes the result when nothing failed.
package extender

import (
	"context"
	"errors"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/conduit-lang/docxmlext/internal/augment"
	"github.com/conduit-lang/docxmlext/internal/docxml"
	runerrors "github.com/conduit-lang/docxmlext/internal/errors"
	"github.com/conduit-lang/docxmlext/internal/metadata"
	"github.com/conduit-lang/docxmlext/internal/pool"
)

// Options configures a run.
type Options struct {
	DocPath      string   // Input documentation XML
	ManifestPath string   // Metadata manifest of the documented binary
	References   []string // Manifests of referenced binaries
	OutputPath   string   // Where the augmented XML is written
	Workers      int      // Worker count, non-positive means one per CPU
	Indent       int      // Output indentation, 0 keeps the input layout
	Logger       *zap.Logger
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Records  int
	Counts   map[augment.Status]int
	Kinds    map[string]int // Resolved records per entity kind
	Skipped  int            // Placeholder checks that were not performed
	Written  bool
	Errors   []*runerrors.RunError
	Duration time.Duration
}

// Resolved returns the number of records whose entity was found.
func (s *Summary) Resolved() int {
	return s.Counts[augment.StatusResolved]
}

// Unresolved returns the number of records that received an empty fragment.
func (s *Summary) Unresolved() int {
	return s.Records - s.Resolved()
}

// Failed reports whether any collaborator failure or record fault occurred.
func (s *Summary) Failed() bool {
	return len(s.Errors) > 0
}

// Runner executes runs for fixed options.
type Runner struct {
	opts   Options
	logger *zap.Logger

	// augmentFn replaces the augmenter in tests.
	augmentFn func(a *augment.Augmenter, id string) (*etree.Element, augment.Outcome)
}

// New creates a runner.
func New(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		opts:   opts,
		logger: logger,
		augmentFn: func(a *augment.Augmenter, id string) (*etree.Element, augment.Outcome) {
			return a.Augment(id)
		},
	}
}

// inputs holds the loaded collaborators of a run.
type inputs struct {
	doc        *docxml.Document
	primary    *metadata.Manifest
	references []*metadata.Manifest
}

// Run performs one pass. The returned error is the first failure, also
// listed in Summary.Errors; the output file is only written when there is
// none.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{
		RunID:  uuid.NewString(),
		Counts: make(map[augment.Status]int),
		Kinds:  make(map[string]int),
	}
	logger := r.logger.With(zap.String("run_id", summary.RunID))
	defer func() {
		summary.Duration = time.Since(start)
	}()

	var flag pool.FailureFlag
	in, loadErrs := r.load(&flag)
	if flag.Failed() {
		for _, err := range loadErrs {
			logger.Error("input failed to load", zap.Error(err))
		}
		summary.Errors = loadErrs
		return summary, loadErrs[0]
	}

	store := metadata.NewStore(in.primary, in.references...)
	augmenter := augment.New(store)
	records := in.doc.Records()
	summary.Records = len(records)

	logger.Info("augmenting",
		zap.String("assembly", store.Assembly()),
		zap.Int("types", store.Len()),
		zap.Int("records", len(records)),
	)

	fragments := make([]*etree.Element, len(records))
	outcomes := make([]augment.Outcome, len(records))

	workers := pool.New(r.opts.Workers, logger)
	workers.Run(ctx, len(records), &flag, func(ctx context.Context, i int) error {
		frag, out := r.augmentFn(augmenter, records[i].Name)
		fragments[i] = frag
		outcomes[i] = out
		return nil
	})

	for i, out := range outcomes {
		if fragments[i] == nil {
			continue
		}
		in.doc.Attach(records[i], fragments[i])
		summary.Counts[out.Status]++
		summary.Skipped += len(out.Skipped)
		if out.Resolved() {
			summary.Kinds[out.Kind.String()]++
		} else {
			logger.Debug("record not resolved",
				zap.String("id", out.ID),
				zap.Stringer("status", out.Status),
			)
		}
	}

	if flag.Failed() {
		err := flag.Err()
		var pe *pool.PanicError
		if errors.As(err, &pe) {
			summary.Errors = append(summary.Errors, runerrors.Augment(records[pe.Index].Name, err))
		} else {
			summary.Errors = append(summary.Errors, runerrors.New(runerrors.PhaseAugment, runerrors.ErrAugment, "augmentation failed", "", err))
		}
		logger.Error("augmentation faulted, output not written", zap.Error(err))
		return summary, summary.Errors[0]
	}

	if err := in.doc.Save(r.opts.OutputPath, r.opts.Indent); err != nil {
		saveErr := runerrors.Save(r.opts.OutputPath, err)
		flag.Set(saveErr)
		summary.Errors = append(summary.Errors, saveErr)
		logger.Error("output failed to save", zap.Error(saveErr))
		return summary, saveErr
	}
	summary.Written = true

	logger.Info("run complete",
		zap.Int("resolved", summary.Resolved()),
		zap.Int("unresolved", summary.Unresolved()),
		zap.Int("skipped_checks", summary.Skipped),
		zap.String("output", r.opts.OutputPath),
	)
	return summary, nil
}

// load reads all inputs concurrently. Every load runs to completion and each
// failure is recorded in flag and returned, in input order.
func (r *Runner) load(flag *pool.FailureFlag) (*inputs, []*runerrors.RunError) {
	in := &inputs{references: make([]*metadata.Manifest, len(r.opts.References))}
	errs := make([]*runerrors.RunError, 2+len(r.opts.References))

	var g errgroup.Group
	g.Go(func() error {
		doc, err := docxml.Load(r.opts.DocPath)
		if err != nil {
			errs[0] = runerrors.DocLoad(r.opts.DocPath, err)
			flag.Set(errs[0])
			return errs[0]
		}
		in.doc = doc
		return nil
	})
	g.Go(func() error {
		m, err := metadata.LoadFile(r.opts.ManifestPath)
		if err != nil {
			errs[1] = runerrors.MetadataLoad(r.opts.ManifestPath, err)
			flag.Set(errs[1])
			return errs[1]
		}
		in.primary = m
		return nil
	})
	for i, path := range r.opts.References {
		g.Go(func() error {
			m, err := metadata.LoadFile(path)
			if err != nil {
				errs[2+i] = runerrors.MetadataLoad(path, err)
				flag.Set(errs[2+i])
				return errs[2+i]
			}
			in.references[i] = m
			return nil
		})
	}
	_ = g.Wait()

	var failed []*runerrors.RunError
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return in, failed
}
