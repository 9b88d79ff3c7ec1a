package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "john doe", "john doe", 1},
		{"both empty", "", "", 1},
		{"one empty", "john", "", 0},
		{"single substitution", "abcdefghij", "abcdefghiz", 0.9},
		{"word order ignored", "doe john", "john doe", 1},
		{"transposition cheap", "jhon doe", "john doe", 1 - 1.0/8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarityMonotonic(t *testing.T) {
	// больше правок — не выше схожесть
	base := "john doe"
	one := Similarity(base, "jon doe")   // одна правка
	two := Similarity(base, "jan dose")  // больше правок
	assert.Greater(t, one, two)
}

func TestDetectContainment(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want Containment
	}{
		{"a contains b", "alice 2024", "alice", AContainsB},
		{"b contains a", "alice", "alice 2024", BContainsA},
		{"equal is not containment", "alice", "alice", ContainsNone},
		{"disjoint", "alice", "bob", ContainsNone},
		{"empty side", "", "alice", ContainsNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectContainment(tt.a, tt.b))
		})
	}
}

func TestTokenOverlap(t *testing.T) {
	assert.InDelta(t, 1, TokenOverlap("john doe", "doe john"), 1e-9)
	assert.InDelta(t, 1.0/3, TokenOverlap("john doe", "john smith"), 1e-9) // {john} / {john,doe,smith}
	assert.InDelta(t, 0, TokenOverlap("john", "smith"), 1e-9)
	assert.InDelta(t, 0, TokenOverlap("", ""), 1e-9)
}
