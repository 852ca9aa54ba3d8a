package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	chunks := Split("My favorite color is blue. I live in Berlin. ")
	assert.Equal(t, []string{"My favorite color is blue", "I live in Berlin"}, chunks)
}

func TestSplitSingleSentence(t *testing.T) {
	chunks := Split("My favorite color is blue.")
	assert.Equal(t, []string{"My favorite color is blue"}, chunks)
}

func TestSplitEmpty(t *testing.T) {
	assert.Nil(t, Split(""))
	assert.Nil(t, Split("   "))
	assert.Nil(t, Split(". . ."))
}

func TestSplitKeepsOrder(t *testing.T) {
	chunks := Split("first. second. third.")
	assert.Equal(t, []string{"first", "second", "third"}, chunks)
}

func TestSplitDropsWhitespaceSegments(t *testing.T) {
	chunks := Split("a.  .b.")
	assert.Equal(t, []string{"a", "b"}, chunks)
}
