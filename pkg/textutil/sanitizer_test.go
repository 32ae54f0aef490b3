package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "silicone ring", "silicone ring"},
		{"strips tags", "<p>silicone <b>ring</b></p>", "silicone ring"},
		{"unescapes entities first", "&lt;b&gt;ring&lt;/b&gt;", "ring"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveTags(tt.input))
		})
	}
}

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "see our shop ", RemoveLinks("see our shop https://example.com/p/1"))
	assert.Equal(t, "visit ", RemoveLinks("visit www.example.com"))
}

func TestReduceToLength(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"short input untouched", "red ring", 20, "red ring"},
		{"cuts on word boundary", "waterproof silicone ring", 15, "waterproof"},
		{"zero length", "anything", 0, ""},
		{"multibyte safe", "кольцо из силикона", 9, "кольцо"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReduceToLength(tt.input, tt.length))
		})
	}
}

func TestCleanDescription(t *testing.T) {
	input := "<p>Waterproof   <b>silicone</b> ring.</p>  Buy at https://example.com/p/1 today"
	assert.Equal(t, "Waterproof silicone ring. Buy at today", CleanDescription(input, 100))
}
