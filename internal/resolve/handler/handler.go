package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"certmatch-service/internal/fileio"
	"certmatch-service/internal/resolve/model"
	"certmatch-service/internal/resolve/service"
	"certmatch-service/internal/store"
)

// CreateBatch — новая партия рассылки.
func CreateBatch(st *store.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := st.Create()
		logger.Info().Str("batch", b.ID).Msg("batch created")
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":        b.ID,
			"createdAt": b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}

type recipientRow struct {
	Fields  map[string]string `json:"fields"`
	Skipped bool              `json:"skipped"`
}

type recipientsRequest struct {
	Rows      []recipientRow `json:"rows"`
	NameField string         `json:"nameField"`
}

// SetRecipients принимает уже распарсенные строки таблицы (парсинг
// самой таблицы — забота загрузившего UI) плюс настроенное поле имени.
// Индекс строки — позиция в присланном массиве, стабильная на всю партию.
func SetRecipients(st *store.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := batchFrom(w, r, st)
		if b == nil {
			return
		}
		defer r.Body.Close()

		var req recipientsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}

		recipients := make([]model.Recipient, 0, len(req.Rows))
		skipped := 0
		for i, row := range req.Rows {
			if row.Skipped {
				skipped++
			}
			recipients = append(recipients, model.Recipient{
				Index:   i,
				Fields:  row.Fields,
				Skipped: row.Skipped,
			})
		}
		b.SetRecipients(recipients, req.NameField)

		logger.Info().
			Str("batch", b.ID).
			Int("rows", len(recipients)).
			Int("skipped", skipped).
			Str("name_field", req.NameField).
			Msg("recipients set")
		writeJSON(w, http.StatusOK, map[string]any{
			"rows":      len(recipients),
			"skipped":   skipped,
			"nameField": req.NameField,
		})
	}
}

// UploadDocuments принимает multipart "files": одиночные документы и/или
// zip-архивы с ними. Имена файлов в партии уникальны; повторы не
// затирают уже загруженное, а возвращаются в ответе.
func UploadDocuments(st *store.Store, maxUploadMB int, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := batchFrom(w, r, st)
		if b == nil {
			return
		}
		defer r.Body.Close()

		if err := r.ParseMultipartForm(int64(maxUploadMB) << 20); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}
		if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
			writeError(w, http.StatusBadRequest, "missing files")
			return
		}

		var docs []model.CandidateDocument
		for _, fh := range r.MultipartForm.File["files"] {
			part, err := readPart(fh)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("read %s: %v", fh.Filename, err))
				return
			}
			docs = append(docs, part...)
		}

		dups := b.AddCandidates(docs)
		added := len(docs) - len(dups)
		logger.Info().
			Str("batch", b.ID).
			Int("added", added).
			Int("duplicates", len(dups)).
			Msg("documents uploaded")
		writeJSON(w, http.StatusOK, map[string]any{
			"added":      added,
			"duplicates": dups,
		})
	}
}

func readPart(fh *multipart.FileHeader) ([]model.CandidateDocument, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if fileio.IsArchive(fh.Filename) {
		return fileio.ReadArchive(f)
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return []model.CandidateDocument{{Filename: path.Base(fh.Filename), Content: buf}}, nil
}

// Resolve — прогон резолвера по партии. ?incremental=true дорасчитывает
// только записи, которых ещё нет; по умолчанию полный пересчёт
// (ручные привязки не трогаются в обоих режимах).
func Resolve(st *store.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := batchFrom(w, r, st)
		if b == nil {
			return
		}
		start := time.Now()

		recipients, candidates, nameField := b.Inputs()
		var sum model.Summary
		if toBool(r.URL.Query().Get("incremental"), false) {
			sum = b.Table.ResolveMissing(recipients, candidates, nameField)
		} else {
			sum = b.Table.ResolveAll(recipients, candidates, nameField)
		}

		logger.Info().
			Str("batch", b.ID).
			Int("recipients", len(recipients)).
			Int("candidates", len(candidates)).
			Int("matched", sum.Matched).
			Int("needs_review", sum.NeedsReview).
			Bool("mapping_incomplete", sum.MappingIncomplete).
			Dur("elapsed", time.Since(start)).
			Msg("resolve done")
		writeJSON(w, http.StatusOK, map[string]any{
			"summary":     sum,
			"assignments": b.Table.Snapshot(),
		})
	}
}

// Assignments — снимок таблицы без пересчёта.
func Assignments(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := batchFrom(w, r, st)
		if b == nil {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"assignments": b.Table.Snapshot()})
	}
}

type overrideRequest struct {
	Filename string `json:"filename"`
}

// SetOverride — ручная привязка документа к получателю, мимо алгоритма.
func SetOverride(st *store.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := batchFrom(w, r, st)
		if b == nil {
			return
		}
		idx := recipientIndex(w, r)
		if idx < 0 {
			return
		}
		defer r.Body.Close()

		var req overrideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Filename) == "" {
			writeError(w, http.StatusBadRequest, "filename required")
			return
		}

		rec, ok := b.Recipient(idx)
		if !ok {
			writeError(w, http.StatusNotFound, "recipient not found")
			return
		}
		if rec.Skipped {
			// пропущенные не живут в таблице — привязка была бы молча снесена
			writeError(w, http.StatusConflict, "recipient is skipped")
			return
		}
		if _, ok := b.Candidate(req.Filename); !ok {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}

		b.Table.SetOverride(idx, req.Filename)
		logger.Info().Str("batch", b.ID).Int("recipient", idx).Str("filename", req.Filename).Msg("override set")
		writeJSON(w, http.StatusOK, map[string]any{"recipient": idx, "filename": req.Filename})
	}
}

// ClearOverride снимает ручную привязку; авторезультат не трогает.
func ClearOverride(st *store.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := batchFrom(w, r, st)
		if b == nil {
			return
		}
		idx := recipientIndex(w, r)
		if idx < 0 {
			return
		}
		if !b.Table.ClearOverride(idx) {
			writeError(w, http.StatusNotFound, "no override for recipient")
			return
		}
		logger.Info().Str("batch", b.ID).Int("recipient", idx).Msg("override cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// AssignedDocument — lookup для пайплайна отправки: отдаёт содержимое
// назначенного документа или 404, если получателю ничего не назначено.
func AssignedDocument(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := batchFrom(w, r, st)
		if b == nil {
			return
		}
		idx := recipientIndex(w, r)
		if idx < 0 {
			return
		}
		filename, ok := b.Table.AssignedDocument(idx)
		if !ok {
			writeError(w, http.StatusNotFound, "no document assigned")
			return
		}
		doc, ok := b.Candidate(filename)
		if !ok {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		ct := "application/octet-stream"
		if strings.EqualFold(path.Ext(doc.Filename), ".pdf") {
			ct = "application/pdf"
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
		_, _ = w.Write(doc.Content)
	}
}

// Report — отчёт о назначениях для ревью оператором, xlsx или csv.
func Report(st *store.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := batchFrom(w, r, st)
		if b == nil {
			return
		}
		recipients, _, nameField := b.Inputs()
		rows := reportRows(recipients, nameField, b.Table.Snapshot())

		format := strings.ToLower(r.URL.Query().Get("format"))
		switch format {
		case "csv":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="assignments.csv"`)
			if err := fileio.WriteReportCSV(w, rows); err != nil {
				logger.Error().Err(err).Str("batch", b.ID).Msg("write csv report")
			}
		case "", "xlsx":
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="assignments.xlsx"`)
			if err := fileio.WriteReportXLSX(w, rows); err != nil {
				logger.Error().Err(err).Str("batch", b.ID).Msg("write xlsx report")
			}
		default:
			writeError(w, http.StatusBadRequest, "unknown format: "+format)
		}
	}
}

func reportRows(recipients []model.Recipient, nameField string, assignments map[int]model.Assignment) []fileio.ReportRow {
	rows := make([]fileio.ReportRow, 0, len(recipients))
	for _, rec := range recipients {
		row := fileio.ReportRow{
			Index: rec.Index,
			Name:  service.ExtractName(rec.Fields, nameField),
		}
		if rec.Skipped {
			row.Source = "skipped"
			rows = append(rows, row)
			continue
		}
		a, ok := assignments[rec.Index]
		if !ok {
			rows = append(rows, row)
			continue
		}
		row.Document = a.Filename()
		row.Source = string(a.Kind)
		if a.Kind == model.AssignmentAuto && a.Auto != nil {
			row.MatchType = string(a.Auto.Type)
			row.Confidence = strconv.Itoa(a.Auto.Confidence)
			row.Tier = a.Auto.Tier()
			row.NeedsReview = a.Auto.NeedsReview
		}
		rows = append(rows, row)
	}
	return rows
}
