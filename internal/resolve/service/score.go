package service

import (
	"sort"
	"strings"
)

// Containment — направление вхождения одной нормализованной строки в другую.
type Containment int

const (
	ContainsNone Containment = iota
	AContainsB
	BContainsA
)

// DetectContainment проверяет строгое вхождение подстроки. Равные строки —
// это не containment, а exact, поэтому они дают ContainsNone.
func DetectContainment(a, b string) Containment {
	if a == "" || b == "" || a == b {
		return ContainsNone
	}
	if strings.Contains(a, b) {
		return AContainsB
	}
	if strings.Contains(b, a) {
		return BContainsA
	}
	return ContainsNone
}

// Similarity — нормализованная схожесть Дамерау-Левенштейна в [0..1],
// лучшая из прямой и token-sorted (устойчивость к порядку слов:
// "doe john" == "john doe").
func Similarity(a, b string) float64 {
	x := similarity(a, b)
	if y := similarity(tokenSort(a), tokenSort(b)); y > x {
		return y
	}
	return x
}

func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	d := damerauLevenshtein(a, b)
	m := len([]rune(a))
	if mb := len([]rune(b)); mb > m {
		m = mb
	}
	return 1 - float64(d)/float64(m)
}

// tokenSort: сортируем токены по алфавиту (устойчиво к порядку слов)
func tokenSort(s string) string {
	if s == "" {
		return s
	}
	t := strings.Fields(s)
	sort.Strings(t)
	return strings.Join(t, " ")
}

// TokenOverlap — доля общих токенов среди всех различных токенов двух строк.
// Используется только как тай-брейк между одинаково уверенными fuzzy
// кандидатами, на саму уверенность не влияет.
func TokenOverlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		seen[t] = struct{}{}
	}
	union := make(map[string]struct{}, len(ta)+len(tb))
	shared := 0
	for t := range seen {
		union[t] = struct{}{}
	}
	counted := make(map[string]struct{}, len(tb))
	for _, t := range tb {
		union[t] = struct{}{}
		if _, ok := seen[t]; ok {
			if _, dup := counted[t]; !dup {
				shared++
				counted[t] = struct{}{}
			}
		}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(shared) / float64(len(union))
}
