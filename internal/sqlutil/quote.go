// Package sqlutil provides SQL utility functions shared by the database
// extractor and loader.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteIdentifier quotes an identifier (table name, column name) for the
// given driver. MySQL uses backticks, sqlite uses double quotes; existing
// quote characters are escaped by doubling.
func QuoteIdentifier(driver, name string) string {
	if driver == "mysql" {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// validIdentifierRegex matches identifier characters accepted by both MySQL
// and sqlite without quoting surprises. For safety, restricted to
// alphanumeric and underscore only.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name is a valid identifier.
// This is a defense-in-depth measure against SQL injection.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe quotes an identifier after validating it.
// Use this when identifiers might come from untrusted sources.
func QuoteIdentifierSafe(driver, name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(driver, name), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
