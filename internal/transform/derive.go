package transform

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// Rule derives one column from the values of a row. Eval must be a pure
// function; a rule that cannot evaluate for a row returns a sentinel value
// instead of failing the stage.
type Rule interface {
	// Target is the name of the column the rule produces.
	Target() string
	// Inputs are the columns the rule reads. Used to order rules so a rule
	// reading another rule's target runs after it.
	Inputs() []string
	// Eval computes the derived value for one row.
	Eval(row dataset.Row) interface{}
}

// BucketRule maps a numeric column into ordinal labels by thresholds.
// A value v gets Labels[i] for the first threshold with v <= Thresholds[i],
// and the last label when v exceeds every threshold. Missing or non-numeric
// input yields the sentinel.
type BucketRule struct {
	Column     string
	Out        string
	Thresholds []float64
	Labels     []string
	Sentinel   string
}

func (b BucketRule) Target() string   { return b.Out }
func (b BucketRule) Inputs() []string { return []string{b.Column} }

func (b BucketRule) Eval(row dataset.Row) interface{} {
	v, ok := dataset.AsFloat(row[b.Column])
	if !ok {
		return b.Sentinel
	}
	for i, t := range b.Thresholds {
		if v <= t {
			return b.Labels[i]
		}
	}
	return b.Labels[len(b.Labels)-1]
}

// TimestampRule attaches a constant processing timestamp to every row of the
// batch.
type TimestampRule struct {
	Out string
	At  time.Time
}

func (t TimestampRule) Target() string             { return t.Out }
func (t TimestampRule) Inputs() []string           { return nil }
func (t TimestampRule) Eval(dataset.Row) interface{} { return t.At }

// DefaultPriceBuckets is the business rule for categorizing prices.
func DefaultPriceBuckets() BucketRule {
	return BucketRule{
		Column:     "price",
		Out:        "price_category",
		Thresholds: []float64{50, 200, 500},
		Labels:     []string{"Low", "Medium", "High", "Premium"},
		Sentinel:   DefaultSentinel,
	}
}

// DeriveColumns appends the configured derived columns and optionally
// normalizes text columns (trim + title case). Rules are evaluated in
// dependency order so a rule may read columns produced by earlier rules.
type DeriveColumns struct {
	Rules         []Rule
	NormalizeText bool
}

// Name implements Stage.
func (DeriveColumns) Name() string { return "derive_columns" }

// Apply implements Stage.
func (d DeriveColumns) Apply(ds *dataset.Dataset) (*dataset.Dataset, StageReport, error) {
	ordered, err := orderRules(d.Rules)
	if err != nil {
		return ds, StageReport{}, &StageError{Stage: d.Name(), Err: err}
	}

	// A zero timestamp rule is resolved when the batch is processed, so
	// every row of a batch shares one timestamp and each run gets its own.
	now := time.Now().UTC()
	for i, rule := range ordered {
		if tr, ok := rule.(TimestampRule); ok && tr.At.IsZero() {
			tr.At = now
			ordered[i] = tr
		}
	}

	out := ds
	derived := make([]string, 0, len(ordered))
	for _, rule := range ordered {
		out = out.WithColumn(rule.Target(), rule.Eval)
		derived = append(derived, rule.Target())
	}

	var normalized []string
	if d.NormalizeText {
		out, normalized = normalizeText(out, derived)
	}

	report := newReport(d.Name(), ds.RowCount(), out.RowCount())
	report.Detail["derived_columns"] = derived
	if len(normalized) > 0 {
		report.Detail["normalized_columns"] = normalized
	}
	return out, report, nil
}

// orderRules sorts rules so producers run before consumers, via in-degree
// counting over the target->input edges. A cyclic rule set is a
// configuration error.
func orderRules(rules []Rule) ([]Rule, error) {
	producers := make(map[string]int, len(rules))
	for i, rule := range rules {
		if prev, dup := producers[rule.Target()]; dup {
			return nil, fmt.Errorf("rules %d and %d both derive column %q", prev, i, rule.Target())
		}
		producers[rule.Target()] = i
	}

	inDegree := make([]int, len(rules))
	dependents := make(map[int][]int, len(rules))
	for i, rule := range rules {
		for _, input := range rule.Inputs() {
			if p, ok := producers[input]; ok && p != i {
				inDegree[i]++
				dependents[p] = append(dependents[p], i)
			}
		}
	}

	queue := make([]int, 0, len(rules))
	for i := range rules {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	ordered := make([]Rule, 0, len(rules))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		ordered = append(ordered, rules[i])
		for _, dep := range dependents[i] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(ordered) != len(rules) {
		return nil, fmt.Errorf("cycle detected among %d derivation rules", len(rules)-len(ordered))
	}
	return ordered, nil
}

var titleCaser = cases.Title(language.Und)

// normalizeText trims and title-cases the values of every text column except
// the freshly derived ones, which carry already-normalized business labels.
func normalizeText(ds *dataset.Dataset, exclude []string) (*dataset.Dataset, []string) {
	skip := make(map[string]struct{}, len(exclude))
	for _, col := range exclude {
		skip[col] = struct{}{}
	}

	out := ds
	var normalized []string
	for _, col := range ds.ColumnNames() {
		if _, ok := skip[col]; ok {
			continue
		}
		values, err := ds.Column(col)
		if err != nil || !dataset.IsTextColumn(values) {
			continue
		}
		out = out.WithColumn(col, func(row dataset.Row) interface{} {
			s, ok := row[col].(string)
			if !ok {
				return row[col]
			}
			return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
		})
		normalized = append(normalized, col)
	}
	return out, normalized
}
