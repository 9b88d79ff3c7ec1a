package service

import (
	"certmatch-service/internal/resolve/model"
)

// Rank оценивает получателя против каждого кандидата и возвращает лучший
// результат. nil — когда кандидатов нет или нормализованное имя пусто
// (получатель unmatched, без MatchResult). Раннего выхода нет намеренно:
// уверенность не монотонна по порядку перечисления.
func Rank(name string, candidates []model.CandidateDocument) *model.MatchResult {
	nn := Normalize(name)
	if nn == "" || len(candidates) == 0 {
		return nil
	}

	var (
		best     *model.MatchResult
		bestNorm string
	)
	for _, c := range candidates {
		nf := Normalize(c.Filename)
		if nf == "" {
			continue // классификатор не зовём на пустых строках
		}
		conf, typ := classifyNorm(nn, nf)
		r := model.MatchResult{
			Filename:    c.Filename,
			Confidence:  conf,
			Type:        typ,
			NeedsReview: conf < model.TierMedium,
		}
		if best == nil || better(nn, r, nf, *best, bestNorm) {
			best = &r
			bestNorm = nf
		}
	}
	return best
}

// Ранг типа для тай-брейка: exact < containment (оба направления) < fuzzy.
func typeRank(t model.MatchType) int {
	switch t {
	case model.MatchExact:
		return 0
	case model.MatchPDFContains, model.MatchNameContains:
		return 1
	default:
		return 2
	}
}

// better — строгий детерминированный порядок кандидатов:
// уверенность → тип → (для fuzzy) пересечение токенов → более короткое
// нормализованное имя файла → более ранний в списке (за счёт того, что при
// полном равенстве удерживается уже выбранный).
func better(nn string, a model.MatchResult, aNorm string, b model.MatchResult, bNorm string) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if ra, rb := typeRank(a.Type), typeRank(b.Type); ra != rb {
		return ra < rb
	}
	if a.Type == model.MatchFuzzy && b.Type == model.MatchFuzzy {
		if oa, ob := TokenOverlap(nn, aNorm), TokenOverlap(nn, bNorm); oa != ob {
			return oa > ob
		}
	}
	if la, lb := len([]rune(aNorm)), len([]rune(bNorm)); la != lb {
		return la < lb
	}
	return false
}
