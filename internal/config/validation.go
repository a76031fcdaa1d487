package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if len(c.Sources) == 0 {
		errs = append(errs, ValidationError{
			Field:   "sources",
			Message: "at least one source must be defined",
		})
	}
	for i, src := range c.Sources {
		errs = append(errs, validateSource(i, src)...)
	}

	if len(c.Targets) == 0 {
		errs = append(errs, ValidationError{
			Field:   "targets",
			Message: "at least one target must be defined",
		})
	}
	for i, tgt := range c.Targets {
		errs = append(errs, validateTarget(i, tgt)...)
	}

	switch c.Transform.NumericFill {
	case "", "mean", "median", "mode", "zero":
	default:
		errs = append(errs, ValidationError{
			Field:   "transform.numeric_fill",
			Message: fmt.Sprintf("unknown policy %q (expected mean, median, mode, or zero)", c.Transform.NumericFill),
		})
	}

	if c.Schedule.Enabled && c.Schedule.IntervalMinutes <= 0 {
		errs = append(errs, ValidationError{
			Field:   "schedule.interval_minutes",
			Message: "must be positive when scheduling is enabled",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSource(i int, src SourceConfig) ValidationErrors {
	field := func(name string) string { return fmt.Sprintf("sources[%d].%s", i, name) }
	var errs ValidationErrors

	if src.Name == "" {
		errs = append(errs, ValidationError{Field: field("name"), Message: "name is required"})
	}
	switch src.Kind {
	case KindCSV:
		if src.Path == "" {
			errs = append(errs, ValidationError{Field: field("path"), Message: "path is required for csv sources"})
		}
	case KindDatabase:
		if src.DSN == "" {
			errs = append(errs, ValidationError{Field: field("dsn"), Message: "dsn is required for database sources"})
		}
		if src.Query == "" {
			errs = append(errs, ValidationError{Field: field("query"), Message: "query is required for database sources"})
		}
		errs = append(errs, validateDriver(field("driver"), src.Driver)...)
	case KindAPI:
		if src.Rows < 0 {
			errs = append(errs, ValidationError{Field: field("rows"), Message: "rows must not be negative"})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   field("kind"),
			Message: fmt.Sprintf("unknown kind %q (expected csv, database, or api)", src.Kind),
		})
	}
	return errs
}

func validateTarget(i int, tgt TargetConfig) ValidationErrors {
	field := func(name string) string { return fmt.Sprintf("targets[%d].%s", i, name) }
	var errs ValidationErrors

	if tgt.Name == "" {
		errs = append(errs, ValidationError{Field: field("name"), Message: "name is required"})
	}
	switch tgt.Kind {
	case KindCSV, KindJSON:
		if tgt.Path == "" {
			errs = append(errs, ValidationError{Field: field("path"), Message: "path is required for file targets"})
		}
	case KindDatabase:
		if tgt.DSN == "" {
			errs = append(errs, ValidationError{Field: field("dsn"), Message: "dsn is required for database targets"})
		}
		if tgt.Table == "" {
			errs = append(errs, ValidationError{Field: field("table"), Message: "table is required for database targets"})
		}
		errs = append(errs, validateDriver(field("driver"), tgt.Driver)...)
	default:
		errs = append(errs, ValidationError{
			Field:   field("kind"),
			Message: fmt.Sprintf("unknown kind %q (expected csv, json, or database)", tgt.Kind),
		})
	}
	return errs
}

func validateDriver(field, driver string) ValidationErrors {
	switch driver {
	case "mysql", "sqlite":
		return nil
	default:
		return ValidationErrors{{
			Field:   field,
			Message: fmt.Sprintf("unknown driver %q (expected mysql or sqlite)", driver),
		}}
	}
}
