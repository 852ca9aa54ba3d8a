// Package sqlguard validates model generated SQL before execution. The
// generation prompt asks for retrieval queries only, but prompt text is not a
// security boundary, so every statement is checked again server side.
package sqlguard

import (
	"fmt"
	"strings"
)

var forbiddenKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "create", "truncate",
	"grant", "revoke", "copy", "vacuum", "comment", "execute", "call",
	"do", "merge", "reindex", "cluster", "listen", "notify", "set",
}

// EnsureReadOnly returns an error unless query is a single SELECT (or WITH ...
// SELECT) statement free of mutating keywords. The check is intentionally
// conservative: anything ambiguous is rejected.
func EnsureReadOnly(query string) error {
	normalized := strings.TrimSpace(query)
	if normalized == "" {
		return fmt.Errorf("empty query")
	}

	normalized = strings.TrimSuffix(normalized, ";")
	if strings.Contains(normalized, ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}
	if strings.Contains(normalized, "--") || strings.Contains(normalized, "/*") {
		return fmt.Errorf("comments are not allowed in generated queries")
	}

	lowered := strings.ToLower(normalized)
	if !strings.HasPrefix(lowered, "select") && !strings.HasPrefix(lowered, "with") {
		return fmt.Errorf("only retrieval queries are allowed")
	}

	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '_'
	})
	for _, word := range words {
		for _, forbidden := range forbiddenKeywords {
			if word == forbidden {
				return fmt.Errorf("forbidden keyword in query: %s", forbidden)
			}
		}
	}

	return nil
}
