package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Латиница→кириллица (визуальные двойники). Применяется к обеим сторонам
// сравнения, поэтому чисто латинские имена остаются сопоставимыми сами с собой.
var lookalikes = map[rune]rune{
	'A': 'А', 'B': 'В', 'C': 'С', 'E': 'Е', 'H': 'Н', 'K': 'К', 'M': 'М', 'O': 'О', 'P': 'Р', 'T': 'Т', 'X': 'Х', 'Y': 'У',
	'a': 'а', 'c': 'с', 'e': 'е', 'o': 'о', 'p': 'р', 'x': 'х',
}

// Токены без идентифицирующей информации: срезаем с обеих сторон,
// чтобы "Alice_Certificate.pdf" сравнивался с "Alice", а не с шаблоном файла.
var fillerTokens = map[string]struct{}{
	"certificate": {},
	"cert":        {},
	"document":    {},
	"doc":         {},
	"diploma":     {},
	"сертификат":  {},
	"диплом":      {},
}

// Хвостовое расширение документа (только известные; "j.doe" — не расширение).
var reDocExt = regexp.MustCompile(`(?i)\.(pdf|docx?|png|jpe?g|tiff?)$`)

// Всё, что не буква и не цифра, становится разделителем.
var reSeparators = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Normalize приводит имя получателя или имя файла к канонической форме.
// Обязательно симметрично: обе стороны сравнения проходят один конвейер.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = reDocExt.ReplaceAllString(s, "")
	s = unifyRunes(s)
	s = foldDiacritics(s)
	s = strings.ToLower(s)
	s = reSeparators.ReplaceAllString(s, " ")
	s = dropFillerTokens(s)
	return strings.TrimSpace(s)
}

// Ё→Е, лат↔кир по lookalikes, ×/*/· → пробел
func unifyRunes(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case 'ё':
			r = 'е'
		case 'Ё':
			r = 'Е'
		case '×', '*', '·':
			r = ' '
		default:
			if rr, ok := lookalikes[r]; ok {
				r = rr
			}
		}
		b = append(b, r)
	}
	return string(b)
}

// Сворачиваем диакритику: José → Jose. Transformer собирается на каждый
// вызов, т.к. цепочка stateful и не годится для конкурентного использования.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func dropFillerTokens(s string) string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if _, ok := fillerTokens[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
