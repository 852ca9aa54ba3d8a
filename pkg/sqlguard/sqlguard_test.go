package sqlguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureReadOnlyAcceptsSelect(t *testing.T) {
	assert.NoError(t, EnsureReadOnly("SELECT industry, COUNT(*) FROM unicorns GROUP BY industry ORDER BY COUNT(*) DESC LIMIT 5"))
	assert.NoError(t, EnsureReadOnly("select company, valuation from unicorns where lower(country) ilike lower('%united states%');"))
	assert.NoError(t, EnsureReadOnly("WITH yearly AS (SELECT EXTRACT(YEAR FROM date) AS y FROM unicorns) SELECT y, COUNT(*) FROM yearly GROUP BY y"))
}

func TestEnsureReadOnlyRejectsMutations(t *testing.T) {
	for _, query := range []string{
		"DELETE FROM unicorns",
		"INSERT INTO unicorns (company) VALUES ('x')",
		"UPDATE unicorns SET valuation = 0",
		"DROP TABLE unicorns",
		"TRUNCATE unicorns",
		"SELECT 1; DELETE FROM unicorns",
		"CREATE TABLE pwn (id int)",
	} {
		assert.Error(t, EnsureReadOnly(query), query)
	}
}

func TestEnsureReadOnlyRejectsNonSelectPrefix(t *testing.T) {
	assert.Error(t, EnsureReadOnly("EXPLAIN SELECT * FROM unicorns"))
	assert.Error(t, EnsureReadOnly(""))
	assert.Error(t, EnsureReadOnly("   "))
}

func TestEnsureReadOnlyRejectsComments(t *testing.T) {
	assert.Error(t, EnsureReadOnly("SELECT * FROM unicorns -- delete later"))
	assert.Error(t, EnsureReadOnly("SELECT /* hidden */ * FROM unicorns"))
}
