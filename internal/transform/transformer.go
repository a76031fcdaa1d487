package transform

import (
	"fmt"
	"time"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// Stage is one discrete, ordered transform operation.
type Stage interface {
	Name() string
	Apply(*dataset.Dataset) (*dataset.Dataset, StageReport, error)
}

// Options configures the transform pipeline for one run.
type Options struct {
	// OutlierColumns are the numeric columns checked by RemoveOutliers.
	OutlierColumns []string
	// NumericFill is the fill policy for numeric columns (default mean).
	NumericFill string
	// TextFill is the sentinel for text columns (default "unknown").
	TextFill string
	// NormalizeText enables trim + title-case of text columns.
	NormalizeText bool
	// Rules are the column derivation rules. Nil means the default business
	// rules (price bucketing).
	Rules []Rule
	// ProcessedAt is the batch timestamp attached to every row. Zero means
	// the time each batch is processed.
	ProcessedAt time.Time
}

// Transformer applies the four cleaning stages in their fixed order:
// deduplicate, fill missing, remove outliers, derive columns. The ordering
// matters: dedup runs before quartiles are computed, and derivation assumes
// a dataset without missing values.
type Transformer struct {
	stages []Stage
}

// New builds a Transformer from options, validating the fill policy and the
// derivation rule set up front.
func New(opts Options) (*Transformer, error) {
	switch opts.NumericFill {
	case "", FillMean, FillMedian, FillMode, FillZero:
	default:
		return nil, fmt.Errorf("unknown numeric fill policy %q", opts.NumericFill)
	}

	rules := opts.Rules
	if rules == nil {
		rules = []Rule{DefaultPriceBuckets()}
	}
	rules = append(rules, TimestampRule{Out: "processed_at", At: opts.ProcessedAt})

	if _, err := orderRules(rules); err != nil {
		return nil, fmt.Errorf("invalid derivation rules: %w", err)
	}

	return &Transformer{
		stages: []Stage{
			Deduplicate{},
			FillMissing{NumericPolicy: opts.NumericFill, Sentinel: opts.TextFill},
			RemoveOutliers{Columns: opts.OutlierColumns},
			DeriveColumns{Rules: rules, NormalizeText: opts.NormalizeText},
		},
	}, nil
}

// Stages returns the stages in execution order, for callers that drive and
// time each stage themselves.
func (t *Transformer) Stages() []Stage {
	return t.stages
}

// Apply runs all stages in order. On a stage failure it returns the last
// successfully produced dataset, the reports of the completed stages, and a
// StageError for the failed one.
func (t *Transformer) Apply(ds *dataset.Dataset) (*dataset.Dataset, []StageReport, error) {
	reports := make([]StageReport, 0, len(t.stages))
	current := ds
	for _, stage := range t.stages {
		next, report, err := stage.Apply(current)
		if err != nil {
			return current, reports, wrapStageErr(stage.Name(), err)
		}
		current = next
		reports = append(reports, report)
	}
	return current, reports, nil
}

func wrapStageErr(stage string, err error) error {
	if _, ok := err.(*StageError); ok {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}
