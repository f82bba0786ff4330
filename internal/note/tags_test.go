package note

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"no tags here", nil},
		{"#Work and #work and #home", []string{"work", "home"}},
		{"email a#b is still a tag", []string{"b"}},
		{"#" + strings.Repeat("x", 40), []string{strings.Repeat("x", 32)}},
		{"# alone", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.text))
		})
	}
}

func TestExtractTagsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "#t%d ", i)
	}
	got := ExtractTags(b.String())
	assert.Len(t, got, maxTags)
	assert.Equal(t, "t0", got[0])
}
