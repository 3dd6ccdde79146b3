package worker

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/chemscreen/internal/cache"
	"github.com/ppiankov/chemscreen/internal/element"
	"github.com/ppiankov/chemscreen/internal/model"
	"github.com/ppiankov/chemscreen/internal/screen"
)

// Classifier decides the validity of a single formula
type Classifier interface {
	Validity(formula string, opts screen.ValidityOptions) (*model.Verdict, error)
}

// ValidityJob classifies one formula
type ValidityJob struct {
	Index      int // position in the batch
	Formula    string
	Options    screen.ValidityOptions
	Classifier Classifier
	Cache      *cache.VerdictCache
	Limiter    *Limiter
	Logger     *zap.Logger

	// SourceDigest identifies the contents of a custom source file so
	// edits invalidate cached verdicts
	SourceDigest string
}

// Execute runs the job, consulting the cache first
func (j *ValidityJob) Execute(ctx context.Context) Result {
	res := &ValidityResult{Index: j.Index, Formula: j.Formula}

	key, err := cache.Key(j.Formula, j.Options, j.SourceDigest)
	if err != nil {
		res.Error = err
		return res
	}

	if j.Cache != nil {
		if v, ok := j.Cache.Get(key); ok {
			res.Verdict = v
			return res
		}
	}

	if err := j.Limiter.Wait(ctx, SystemKey(j.Formula)); err != nil {
		res.Error = errors.Wrapf(err, "waiting to classify %s", j.Formula)
		return res
	}

	v, err := j.Classifier.Validity(j.Formula, j.Options)
	if err != nil {
		res.Error = err
		return res
	}
	res.Verdict = v

	if j.Cache != nil {
		if err := j.Cache.Put(key, v); err != nil && j.Logger != nil {
			j.Logger.Warn("cache write failed", zap.String("formula", j.Formula), zap.Error(err))
		}
	}
	return res
}

// ValidityResult is the outcome of a ValidityJob
type ValidityResult struct {
	Index   int
	Formula string
	Verdict *model.Verdict
	Error   error
}

// GetError returns the classification error, if any
func (r *ValidityResult) GetError() error {
	return r.Error
}

// BatchProcessor classifies many formulas concurrently
type BatchProcessor struct {
	classifier  Classifier
	concurrency int
	limiter     *Limiter
	cache       *cache.VerdictCache
	logger      *zap.Logger
}

// BatchOption configures a BatchProcessor
type BatchOption func(*BatchProcessor)

// WithCache reuses verdicts across jobs and runs
func WithCache(c *cache.VerdictCache) BatchOption {
	return func(b *BatchProcessor) {
		b.cache = c
	}
}

// WithLogger sets the logger (default: no-op)
func WithLogger(logger *zap.Logger) BatchOption {
	return func(b *BatchProcessor) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatchProcessor creates a batch processor. requestsPerSecond <= 0
// disables throttling.
func NewBatchProcessor(classifier Classifier, concurrency int, requestsPerSecond float64, burst int, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		classifier:  classifier,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ProcessFormulas classifies formulas and returns results in input order.
// Formulas not reached before ctx is cancelled are reported with the
// context error.
func (b *BatchProcessor) ProcessFormulas(ctx context.Context, formulas []string, opts screen.ValidityOptions) []*ValidityResult {
	if len(formulas) == 0 {
		return []*ValidityResult{}
	}

	var digest string
	if b.cache != nil {
		var err error
		if digest, err = sourceDigest(opts.Source); err != nil {
			b.logger.Warn("custom source not hashed, verdicts will not be cached", zap.String("source", opts.Source), zap.Error(err))
			b = b.withoutCache()
		}
	}

	jobs := make([]Job, len(formulas))
	for i, f := range formulas {
		jobs[i] = &ValidityJob{
			Index:        i,
			Formula:      f,
			Options:      opts,
			Classifier:   b.classifier,
			Cache:        b.cache,
			Limiter:      b.limiter,
			Logger:       b.logger,
			SourceDigest: digest,
		}
	}

	pool := NewPool(ctx, b.concurrency)
	results := pool.Run(jobs)

	out := make([]*ValidityResult, len(formulas))
	for _, r := range results {
		res := r.(*ValidityResult)
		out[res.Index] = res
	}
	for i, res := range out {
		if res != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = errors.New("not processed")
		}
		out[i] = &ValidityResult{Index: i, Formula: formulas[i], Error: err}
	}

	b.logger.Debug("batch finished", zap.Int("formulas", len(formulas)), zap.Int("processed", len(results)))
	return out
}

func (b *BatchProcessor) withoutCache() *BatchProcessor {
	c := *b
	c.cache = nil
	return &c
}

// sourceDigest hashes a custom source file; built-in sources return ""
func sourceDigest(name string) (string, error) {
	src, err := element.ParseSource(name)
	if err != nil || !src.IsCustom() {
		// unknown sources fail in the classifier
		return "", nil
	}

	f, err := os.Open(src.Path())
	if err != nil {
		return "", errors.Wrap(err, "open source")
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "hash source")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ProcessFile reads formulas from a file and classifies them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, opts screen.ValidityOptions) ([]*ValidityResult, error) {
	formulas, err := ReadFormulasFromFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "read formulas")
	}

	return b.ProcessFormulas(ctx, formulas, opts), nil
}

// Report summarises results into a BatchReport
func Report(results []*ValidityResult, source string, started time.Time) *model.BatchReport {
	r := &model.BatchReport{
		RunID:     uuid.NewString(),
		StartedAt: started,
		Duration:  time.Since(started),
		Source:    source,
		Total:     len(results),
		Verdicts:  make([]*model.Verdict, 0, len(results)),
	}
	for _, res := range results {
		if res.Error != nil {
			r.Failures++
			r.Errors = append(r.Errors, model.BatchError{Formula: res.Formula, Error: res.Error.Error()})
			continue
		}
		if res.Verdict.Valid {
			r.ValidCount++
		}
		r.Verdicts = append(r.Verdicts, res.Verdict)
	}
	return r
}

// ReadFormulasFromFile reads one formula per line, skipping blank lines
// and # comments and dropping duplicates
func ReadFormulasFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer func() { _ = file.Close() }()

	var formulas []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			formulas = append(formulas, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan file")
	}

	return formulas, nil
}
