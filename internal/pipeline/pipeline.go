package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/qticonv/internal/cache"
	"github.com/ppiankov/qticonv/internal/extract"
	"github.com/ppiankov/qticonv/internal/model"
	"github.com/ppiankov/qticonv/internal/render"
	"github.com/ppiankov/qticonv/internal/worker"
	"github.com/sirupsen/logrus"
)

// ErrMissingBank is returned when an assessment references a bank that no
// document defines and the run is configured to fail on it
var ErrMissingBank = errors.New("assessment references unknown bank")

// Pipeline orchestrates the conversion of one course export.
// Reading is strictly separated from resolving and rendering: a bank may be
// defined in a document read after the assessment that references it.
type Pipeline struct {
	source   Source
	sink     Sink
	reader   *worker.BatchReader
	renderer *render.Renderer
	config   *model.Config
	log      logrus.FieldLogger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, source Source, sink Sink, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var memo cache.Cache = cache.Noop{}
	if cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	reader := extract.NewReader(extract.NewTextReducer(memo), cfg.Render.MatchingMarker, log)

	return &Pipeline{
		source:   source,
		sink:     sink,
		reader:   worker.NewBatchReader(reader, cfg.Concurrency.Workers, cfg.Concurrency.ReadsPerSecond, cfg.Concurrency.Burst),
		renderer: render.NewRenderer(log, cfg.Render.WarnNoCorrect),
		config:   cfg,
		log:      log,
	}
}

// Summary describes what a run did
type Summary struct {
	Documents   int      // Documents found
	Failed      []string // Documents that could not be read
	Assessments int
	Banks       int
	Written     []string // Output names in write order
	Skipped     []string // Assessments skipped for unresolved banks
}

// Run reads every document, resolves bank references and writes one
// output per assessment and per bank
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	paths, err := p.source.Documents()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	summary := &Summary{Documents: len(paths)}

	tables, failed := p.Read(ctx, paths)
	summary.Failed = failed
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("read phase: %w", err)
	}

	summary.Assessments = len(tables.Assessments)
	summary.Banks = len(tables.Banks)

	if err := p.Emit(tables, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

// Read runs the read phase and merges every document into lookup tables.
// Paths of documents that failed are returned; their contribution is lost.
func (p *Pipeline) Read(ctx context.Context, paths []string) (*Tables, []string) {
	tables := NewTables()
	var failed []string

	for _, r := range p.reader.ReadAll(ctx, paths) {
		if r.Error != nil {
			p.log.WithField("document", r.Path).WithError(r.Error).Error("failed to process document")
			failed = append(failed, r.Path)
			continue
		}
		tables.Merge(r.Document, p.log)
	}

	return tables, failed
}

// Emit resolves bank references and writes every rendered output
func (p *Pipeline) Emit(tables *Tables, summary *Summary) error {
	written := make(map[string]string)
	write := func(name, kind, title, text string) error {
		if prev, dup := written[name]; dup {
			p.log.WithFields(logrus.Fields{"file": name, "previous": prev, "current": kind}).Warn("output name collision, overwriting")
		}
		written[name] = kind
		if err := p.sink.Write(name, text); err != nil {
			return fmt.Errorf("write %s output for %q: %w", kind, title, err)
		}
		summary.Written = append(summary.Written, name)
		return nil
	}

	for _, a := range tables.AssessmentList() {
		missing := a.Resolve(tables.Banks)
		if len(missing) > 0 {
			log := p.log.WithFields(logrus.Fields{
				"assessment": a.Ident,
				"missing":    strings.Join(missing, ","),
			})
			if p.config.Render.OnMissingBank == model.MissingBankFail {
				return fmt.Errorf("%w: %s references %s", ErrMissingBank, a.Ident, strings.Join(missing, ", "))
			}
			log.Error("unresolved bank reference, skipping assessment")
			summary.Skipped = append(summary.Skipped, a.Ident)
			continue
		}

		if !p.config.Output.Assessments {
			continue
		}
		p.log.WithField("title", a.Title).Info("Creating assessment output")
		name := FileName(a.Title, p.config.Output.Extension)
		if err := write(name, "assessment", a.Title, p.renderer.Assessment(a)); err != nil {
			return err
		}
	}

	if !p.config.Output.Banks {
		return nil
	}
	for _, b := range tables.BankList() {
		p.log.WithField("title", b.Title).Info("Creating bank output")
		text, _ := p.renderer.Bank(b, 1)
		name := FileName(b.Title, p.config.Output.Extension)
		if err := write(name, "bank", b.Title, text); err != nil {
			return err
		}
	}

	return nil
}
