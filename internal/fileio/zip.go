package fileio

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"certmatch-service/internal/resolve/model"
)

// IsArchive — по расширению: архивом считаем только .zip.
func IsArchive(filename string) bool {
	return strings.EqualFold(path.Ext(filename), ".zip")
}

// ReadArchive распаковывает zip с документами-кандидатами. Каталоги и
// служебный мусор архиваторов пропускаются; имена записей в легаси
// кодировках (cp866/cp1251 — типичный артефакт Windows-архиваторов)
// определяются и приводятся к UTF-8.
func ReadArchive(r io.Reader) ([]model.CandidateDocument, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}

	var out []model.CandidateDocument
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := decodeEntryName(f)
		base := path.Base(name)
		if base == "" || strings.HasPrefix(base, ".") || strings.HasPrefix(name, "__MACOSX/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, model.CandidateDocument{Filename: base, Content: content})
	}
	return out, nil
}

// decodeEntryName — имя записи в UTF-8. Флаг NonUTF8 выставляют не все
// архиваторы, поэтому дополнительно детектируем кодировку по байтам.
func decodeEntryName(f *zip.File) string {
	name := f.Name
	if !f.NonUTF8 {
		return name
	}
	cs := "utf-8"
	if det, err := chardet.NewTextDetector().DetectBest([]byte(name)); err == nil && det != nil {
		cs = strings.ToLower(det.Charset)
	}
	var cm *charmap.Charmap
	switch cs {
	case "windows-1251", "cp1251":
		cm = charmap.Windows1251
	case "ibm866", "cp866":
		cm = charmap.CodePage866
	case "iso-8859-1":
		cm = charmap.ISO8859_1
	default:
		// zip без UTF-8 флага исторически cp866
		cm = charmap.CodePage866
	}
	if dec, _, err := transform.String(cm.NewDecoder(), name); err == nil {
		return dec
	}
	return name
}
