package service

import (
	"math"

	"certmatch-service/internal/resolve/model"
)

// Classify сопоставляет имя получателя с именем файла-кандидата.
// Второе возвращаемое значение false, если хотя бы одна сторона после
// нормализации пуста — в этом случае матча нет вовсе (не "low confidence").
func Classify(name, filename string) (model.MatchResult, bool) {
	nn := Normalize(name)
	nf := Normalize(filename)
	if nn == "" || nf == "" {
		return model.MatchResult{}, false
	}
	conf, typ := classifyNorm(nn, nf)
	return model.MatchResult{
		Filename:    filename,
		Confidence:  conf,
		Type:        typ,
		NeedsReview: conf < model.TierMedium,
	}, true
}

// classifyNorm — политика в порядке приоритета: exact → containment → fuzzy.
// Обе строки уже нормализованы и непусты.
func classifyNorm(nn, nf string) (int, model.MatchType) {
	if nn == nf {
		return 100, model.MatchExact
	}

	switch DetectContainment(nf, nn) {
	case AContainsB: // имя файла содержит имя получателя
		return containmentConfidence(nn, nf), model.MatchPDFContains
	case BContainsA: // имя получателя содержит имя файла
		return containmentConfidence(nf, nn), model.MatchNameContains
	}

	return int(math.Round(Similarity(nn, nf) * 100)), model.MatchFuzzy
}

// Уверенность containment: линейная доля длины вложенной строки от
// вмещающей, с полом на границе Medium — вхождение само по себе уже
// сильный сигнал. Строки не равны, так что доля строго < 1 и containment
// всегда проигрывает exact.
func containmentConfidence(contained, container string) int {
	ratio := float64(len([]rune(contained))) / float64(len([]rune(container)))
	conf := int(math.Round(ratio * 100))
	if conf < model.TierMedium {
		conf = model.TierMedium
	}
	return conf
}
