package service

import (
	"strings"
	"sync"

	"certmatch-service/internal/resolve/model"
)

// Table — таблица назначений получатель → документ. Единственное
// разделяемое состояние резолвера; каждое обновление записи атомарно
// под мьютексом, чтобы check-then-set ручных привязок не рвался
// конкурентным автопрогоном.
type Table struct {
	mu      sync.RWMutex
	entries map[int]model.Assignment
}

func NewTable() *Table {
	return &Table{entries: make(map[int]model.Assignment)}
}

// ResolveAll — полный прогон: свежие MatchResult для всех непропущенных
// получателей без ручной привязки. Ручные привязки никогда не
// перезаписываются; записи пропущенных/исчезнувших получателей удаляются.
// Повторный вызов на тех же входах даёт байт-в-байт тот же результат.
func (t *Table) ResolveAll(recipients []model.Recipient, candidates []model.CandidateDocument, nameField string) model.Summary {
	return t.resolve(recipients, candidates, nameField, false)
}

// ResolveMissing — инкрементальный вариант: считает только получателей,
// у которых ещё нет записи (например, после дозагрузки кандидатов),
// существующие авторезультаты не трогает.
func (t *Table) ResolveMissing(recipients []model.Recipient, candidates []model.CandidateDocument, nameField string) model.Summary {
	return t.resolve(recipients, candidates, nameField, true)
}

func (t *Table) resolve(recipients []model.Recipient, candidates []model.CandidateDocument, nameField string, onlyMissing bool) model.Summary {
	var sum model.Summary

	// Поле имени не задано → ноль попыток и явный флаг, а не попытка с провалом.
	if strings.TrimSpace(nameField) == "" {
		sum.MappingIncomplete = true
		return sum
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// пропущенные получатели не живут в таблице, даже с ручной привязкой
	active := make(map[int]bool, len(recipients))
	for _, rec := range recipients {
		if !rec.Skipped {
			active[rec.Index] = true
		}
	}
	for idx := range t.entries {
		if !active[idx] {
			delete(t.entries, idx)
		}
	}

	for _, rec := range recipients {
		if rec.Skipped {
			continue
		}
		sum.Attempted++

		if e, ok := t.entries[rec.Index]; ok {
			if e.Kind == model.AssignmentManual {
				sum.Matched++
				continue
			}
			if onlyMissing {
				sum.Matched++
				if e.Auto != nil && e.Auto.NeedsReview {
					sum.NeedsReview++
				}
				continue
			}
		}

		name := ExtractName(rec.Fields, nameField)
		res := Rank(name, candidates)
		if res == nil {
			// пустое имя или пустой список кандидатов: unmatched,
			// в статистику уверенности не попадает
			delete(t.entries, rec.Index)
			sum.Unmatched++
			continue
		}
		res.Recipient = rec.Index
		t.entries[rec.Index] = model.Assignment{Kind: model.AssignmentAuto, Auto: res}
		sum.Matched++
		if res.NeedsReview {
			sum.NeedsReview++
		}
	}
	return sum
}

// SetOverride — ручная привязка, минует алгоритм целиком и остаётся
// до явного ClearOverride.
func (t *Table) SetOverride(recipientIndex int, filename string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[recipientIndex] = model.Assignment{Kind: model.AssignmentManual, Manual: filename}
}

// ClearOverride снимает ручную привязку. Авторезультат не трогает;
// true — если привязка была и удалена.
func (t *Table) ClearOverride(recipientIndex int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[recipientIndex]
	if !ok || e.Kind != model.AssignmentManual {
		return false
	}
	delete(t.entries, recipientIndex)
	return true
}

// AssignedDocument — lookup для пайплайна отправки: имя назначенного
// документа, независимо от того, авто он или ручной.
func (t *Table) AssignedDocument(recipientIndex int) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[recipientIndex]
	if !ok {
		return "", false
	}
	return e.Filename(), true
}

// Snapshot — копия таблицы для сериализации.
func (t *Table) Snapshot() map[int]model.Assignment {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[int]model.Assignment, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
