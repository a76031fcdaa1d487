package sqlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		ident  string
		want   string
	}{
		{"mysql backticks", "mysql", "products", "`products`"},
		{"sqlite double quotes", "sqlite", "products", `"products"`},
		{"mysql escapes backtick", "mysql", "bad`name", "`bad``name`"},
		{"sqlite escapes quote", "sqlite", `bad"name`, `"bad""name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteIdentifier(tt.driver, tt.ident))
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"products", "order_items", "Table1", "_private"}
	for _, name := range valid {
		assert.True(t, IsValidIdentifier(name), name)
	}

	invalid := []string{"", "bad name", "drop;table", "items`", `a"b`, "tab-le"}
	for _, name := range invalid {
		assert.False(t, IsValidIdentifier(name), name)
	}
}

func TestQuoteIdentifierSafe(t *testing.T) {
	quoted, err := QuoteIdentifierSafe("mysql", "products")
	require.NoError(t, err)
	assert.Equal(t, "`products`", quoted)

	_, err = QuoteIdentifierSafe("sqlite", "products; DROP TABLE users")
	require.Error(t, err)

	var invalidErr *InvalidIdentifierError
	assert.ErrorAs(t, err, &invalidErr)
}
