package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "what is my favorite color", NormalizeQuery(`what is my\nfavorite color`))
	assert.Equal(t, "a b c", NormalizeQuery(`a\nb\nc`))
}

func TestNormalizeQueryKeepsRealNewlines(t *testing.T) {
	assert.Equal(t, "a\nb", NormalizeQuery("a\nb"))
}
