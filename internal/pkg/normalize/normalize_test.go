package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabels(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"Nil", nil, []string{}},
		{"Trims and lowercases", []string{"  Go ", "SQL"}, []string{"go", "sql"}},
		{"Collapses inner spaces", []string{"machine   learning"}, []string{"machine learning"}},
		{"Drops duplicates and blanks", []string{"go", "", "GO", "  ", "rust"}, []string{"go", "rust"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Labels(tt.in))
		})
	}
}

func TestText(t *testing.T) {
	s, ok := Text("  hello ")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = Text("   ")
	assert.False(t, ok)
}
