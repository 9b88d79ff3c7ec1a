package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certmatch-service/internal/resolve/model"
)

func TestClassifyExact(t *testing.T) {
	res, ok := Classify("John Doe", "John_Doe.pdf")
	require.True(t, ok)
	assert.Equal(t, model.MatchExact, res.Type)
	assert.Equal(t, 100, res.Confidence)
	assert.False(t, res.NeedsReview)
}

func TestClassifyEmptySides(t *testing.T) {
	_, ok := Classify("", "John_Doe.pdf")
	assert.False(t, ok)
	_, ok = Classify("John Doe", "")
	assert.False(t, ok)
	// имя файла из одних filler-токенов нормализуется в пустоту
	_, ok = Classify("John Doe", "certificate.pdf")
	assert.False(t, ok)
}

func TestClassifyContainment(t *testing.T) {
	// "alice" ⊂ "alice 2024": доля 5/10 → пол Medium
	res, ok := Classify("Alice", "Alice_Certificate_2024.pdf")
	require.True(t, ok)
	assert.Equal(t, model.MatchPDFContains, res.Type)
	assert.Equal(t, model.TierMedium, res.Confidence)
	assert.False(t, res.NeedsReview)

	// обратное направление: имя содержит имя файла
	res, ok = Classify("Anna Maria Rossi", "Rossi.pdf")
	require.True(t, ok)
	assert.Equal(t, model.MatchNameContains, res.Type)
	assert.GreaterOrEqual(t, res.Confidence, model.TierMedium)
	assert.False(t, res.NeedsReview)
}

func TestClassifyContainmentRatio(t *testing.T) {
	// больший охват вмещающей строки → не меньшая уверенность
	long, ok := Classify("Annabelle", "Annabelle_X.pdf")
	require.True(t, ok)
	short, ok := Classify("Ann", "Annabelle_X.pdf")
	require.True(t, ok)
	assert.GreaterOrEqual(t, long.Confidence, short.Confidence)
	// containment никогда не дотягивает до exact
	assert.Less(t, long.Confidence, 100)
}

func TestClassifyFuzzy(t *testing.T) {
	// "jon doe" vs "john doe": одна вставка на 8 рун → 87.5 → 88
	res, ok := Classify("Jon Doe", "John_Doe.pdf")
	require.True(t, ok)
	assert.Equal(t, model.MatchFuzzy, res.Type)
	assert.Equal(t, 88, res.Confidence)
	assert.False(t, res.NeedsReview)
}

// Границы ярусов — внешний контракт: ровно 90 без ревью, 89 — с ревью.
func TestReviewBoundary(t *testing.T) {
	// 10 рун, одна замена → 0.9 → 90
	conf, typ := classifyNorm("abcdefghij", "abcdefghiz")
	assert.Equal(t, model.MatchFuzzy, typ)
	assert.Equal(t, model.TierHigh, conf)
	assert.False(t, conf < model.TierMedium)

	// 9 рун, одна замена → 0.888… → 89
	conf, _ = classifyNorm("bcdefghij", "bcdefghiz")
	assert.Equal(t, 89, conf)

	// далёкая пара — ниже Medium, требует ревью
	res, ok := Classify("Zara Khan", "Bob_Smith.pdf")
	require.True(t, ok)
	assert.Less(t, res.Confidence, model.TierMedium)
	assert.True(t, res.NeedsReview)
}

func TestMatchResultTier(t *testing.T) {
	assert.Equal(t, "high", model.MatchResult{Confidence: 90}.Tier())
	assert.Equal(t, "medium", model.MatchResult{Confidence: 89}.Tier())
	assert.Equal(t, "medium", model.MatchResult{Confidence: 70}.Tier())
	assert.Equal(t, "low", model.MatchResult{Confidence: 69}.Tier())
}
