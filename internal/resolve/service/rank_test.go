package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certmatch-service/internal/resolve/model"
)

func docs(names ...string) []model.CandidateDocument {
	out := make([]model.CandidateDocument, 0, len(names))
	for _, n := range names {
		out = append(out, model.CandidateDocument{Filename: n})
	}
	return out
}

func TestRankEmptyInputs(t *testing.T) {
	assert.Nil(t, Rank("John Doe", nil))
	assert.Nil(t, Rank("John Doe", docs()))
	assert.Nil(t, Rank("", docs("John_Doe.pdf")))
	assert.Nil(t, Rank("   ", docs("John_Doe.pdf")))
	// все кандидаты нормализуются в пустоту
	assert.Nil(t, Rank("John Doe", docs("certificate.pdf", "doc.pdf")))
}

func TestRankExactWins(t *testing.T) {
	res := Rank("John Doe", docs("Jane_Smith.pdf", "John_Doe.pdf"))
	require.NotNil(t, res)
	assert.Equal(t, "John_Doe.pdf", res.Filename)
	assert.Equal(t, model.MatchExact, res.Type)
	assert.Equal(t, 100, res.Confidence)
	assert.False(t, res.NeedsReview)
}

// Exact обязан победить независимо от схожести остальных кандидатов.
func TestRankExactSupremacy(t *testing.T) {
	res := Rank("John Doe", docs(
		"John_Doe_2.pdf",  // почти то же, fuzzy/containment
		"John_Doe.pdf",    // exact
		"John_Doee.pdf",   // одна правка
	))
	require.NotNil(t, res)
	assert.Equal(t, "John_Doe.pdf", res.Filename)
	assert.Equal(t, model.MatchExact, res.Type)
}

func TestRankTieBreakType(t *testing.T) {
	// token-sorted равенство даёт fuzzy со 100, exact при той же уверенности выше
	res := Rank("John Doe", docs("Doe_John.pdf", "John_Doe.pdf"))
	require.NotNil(t, res)
	assert.Equal(t, model.MatchExact, res.Type)
	assert.Equal(t, "John_Doe.pdf", res.Filename)
}

func TestRankTieBreakShorterFilename(t *testing.T) {
	// оба containment с полом 70: короче нормализованное имя — сильнее сигнал
	res := Rank("Alice", docs(
		"Alice_Certificate_Final_2024_v2.pdf",
		"Alice_2024_okay.pdf",
	))
	require.NotNil(t, res)
	assert.Equal(t, "Alice_2024_okay.pdf", res.Filename)
}

func TestRankTieBreakStable(t *testing.T) {
	// полный паритет → побеждает более ранний в списке
	res := Rank("Alice", docs("Alice_aa_2024.pdf", "Alice_bb_2024.pdf"))
	require.NotNil(t, res)
	assert.Equal(t, "Alice_aa_2024.pdf", res.Filename)
}

func TestRankFuzzyTypo(t *testing.T) {
	res := Rank("Jon Doe", docs("John_Doe.pdf"))
	require.NotNil(t, res)
	assert.Equal(t, model.MatchFuzzy, res.Type)
	assert.GreaterOrEqual(t, res.Confidence, model.TierMedium)
	assert.False(t, res.NeedsReview)
}

func TestRankNoAcceptableCandidate(t *testing.T) {
	res := Rank("Zara Khan", docs("Bob_Smith.pdf", "Carol_Jones.pdf"))
	require.NotNil(t, res)
	assert.Less(t, res.Confidence, model.TierMedium)
	assert.True(t, res.NeedsReview)
}

// Для кандидатов одного типа большая текстовая схожесть не может дать
// меньшую уверенность.
func TestRankMonotonicity(t *testing.T) {
	closeRes, ok := Classify("Jon Doe", "John_Doe.pdf")
	require.True(t, ok)
	farRes, ok := Classify("Jon Doe", "Jan_Dose.pdf")
	require.True(t, ok)
	require.Equal(t, model.MatchFuzzy, closeRes.Type)
	require.Equal(t, model.MatchFuzzy, farRes.Type)
	assert.GreaterOrEqual(t, closeRes.Confidence, farRes.Confidence)
}

func TestRankDeterministic(t *testing.T) {
	cands := docs("A_list.pdf", "B_list.pdf", "Alice_2024.pdf", "Alicia.pdf")
	first := Rank("Alice", cands)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Rank("Alice", cands))
	}
}
