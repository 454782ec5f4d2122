package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordMatcher(t *testing.T) {
	m := NewKeywordMatcher([]string{"Theft", "robbery", " ", "snatch"})

	assert.Equal(t, []string{"theft", "snatch"}, m.Matches("Chain SNATCHING and theft reported"))
	assert.True(t, m.Any("A ROBBERY downtown"))
	assert.False(t, m.Any("A quiet day"))
	assert.Nil(t, m.Matches(""))
}

func TestKeywordMatcher_Empty(t *testing.T) {
	m := NewKeywordMatcher(nil)
	assert.False(t, m.Any("robbery"))
}
