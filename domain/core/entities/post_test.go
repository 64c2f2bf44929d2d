package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{name: "nil list", tags: nil, want: ""},
		{name: "empty list", tags: []string{}, want: ""},
		{name: "single tag", tags: []string{"go"}, want: "go"},
		{name: "keeps order", tags: []string{"testing", "junit"}, want: "testing,junit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinTags(tt.tags))
		})
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   []string
	}{
		{name: "empty string", stored: "", want: []string{}},
		{name: "blank string", stored: "   ", want: []string{}},
		{name: "two tags", stored: "testing,junit", want: []string{"testing", "junit"}},
		{name: "trailing separators dropped", stored: "a,b,,", want: []string{"a", "b"}},
		{name: "interior empties kept", stored: "a,,b", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.stored)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTags_RoundTrip(t *testing.T) {
	for _, tags := range [][]string{{}, {"a", "b"}, {"one"}, {"x", "y", "z"}} {
		assert.Equal(t, tags, SplitTags(JoinTags(tags)))
	}
}
