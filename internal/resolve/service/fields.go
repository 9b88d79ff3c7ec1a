package service

import (
	"regexp"
	"strings"
)

var reHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, убираем служ.символы/множественные пробелы/ё→е
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ", "ё", "е").Replace(s) // NBSP/NNBSP
	s = reHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveFieldKey ищет реальный ключ записи по настроенному имени поля.
// Поддерживает альтернативы через "|" (например: "Name|ФИО").
// Порядок: точное совпадение → нормализованное → частичное (для
// составных заголовков вида "participant full name").
func ResolveFieldKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	var nWantAll []string
	for _, a := range alts {
		nWantAll = append(nWantAll, normHeaderKey(a))
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		for _, n := range nWantAll {
			if nk == n {
				return k
			}
		}
		score := 0
		for _, n := range nWantAll {
			if n != "" && (strings.Contains(nk, n) || strings.Contains(n, nk)) {
				if len(n) > score {
					score = len(n)
				}
			}
		}
		// эвристика: обе стороны похожи на колонку с именем
		if looksLikeNameKey(nWantAll[0]) && looksLikeNameKey(nk) {
			score += 100
		}
		// при равном счёте берём лексикографически меньший ключ:
		// порядок обхода map недетерминирован
		if score > bestScore || (score == bestScore && score > 0 && k < bestKey) {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

func looksLikeNameKey(s string) bool {
	for _, marker := range []string{"name", "фио", "имя", "участник"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// ExtractName — контракт "recipient-name extractor": по записи и
// настроенному полю возвращает имя (возможно пустое).
func ExtractName(fields map[string]string, nameField string) string {
	key := ResolveFieldKey(fields, nameField)
	if key == "" {
		return ""
	}
	return strings.TrimSpace(fields[key])
}
