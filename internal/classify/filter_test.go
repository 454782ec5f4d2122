package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceFilter(t *testing.T) {
	f := NewRelevanceFilter(DefaultRelevanceKeywords)

	tests := []struct {
		para string
		want bool
	}{
		{"A sunny day at the beach.", false},
		{"Two men were arrested for chain snatching in Mylapore.", true},
		{"FLOOD warning issued for low-lying areas.", true},
		{"The Metro train services resume on Monday.", true},
		{"Cultural festival draws large crowds.", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Relevant(tt.para), tt.para)
	}
}

func TestRelevanceFilter_KeepsOrder(t *testing.T) {
	f := NewRelevanceFilter(DefaultRelevanceKeywords)
	in := []string{"murder in Adyar", "weather is nice", "fire at a godown", "cricket scores"}
	assert.Equal(t, []string{"murder in Adyar", "fire at a godown"}, f.Filter(in))
	assert.Empty(t, f.Filter([]string{"nothing here"}))
}
