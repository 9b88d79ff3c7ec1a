package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"certmatch-service/internal/resolve/model"
	"certmatch-service/internal/resolve/service"
)

// Batch — сессия одной рассылки: получатели, кандидаты, маппинг поля
// имени и таблица назначений. Живёт в памяти до TTL, персистентности
// у резолвера нет по контракту.
type Batch struct {
	ID         string
	CreatedAt  time.Time
	mu         sync.RWMutex
	recipients []model.Recipient
	candidates []model.CandidateDocument
	nameField  string
	Table      *service.Table
}

// SetRecipients заменяет набор получателей и маппинг поля имени.
// Старые авторезультаты снесёт следующий прогон; ручные привязки
// по контракту переживают смену входов.
func (b *Batch) SetRecipients(recipients []model.Recipient, nameField string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recipients = recipients
	b.nameField = nameField
}

// AddCandidates дополняет набор документов. Имя файла уникально в рамках
// партии: повторы возвращаются списком для 409 на уровне handler.
func (b *Batch) AddCandidates(docs []model.CandidateDocument) (dups []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[string]bool, len(b.candidates))
	for _, c := range b.candidates {
		seen[c.Filename] = true
	}
	for _, d := range docs {
		if seen[d.Filename] {
			dups = append(dups, d.Filename)
			continue
		}
		seen[d.Filename] = true
		b.candidates = append(b.candidates, d)
	}
	return dups
}

// Inputs — копии входов для прогона резолвера.
func (b *Batch) Inputs() ([]model.Recipient, []model.CandidateDocument, string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	recipients := make([]model.Recipient, len(b.recipients))
	copy(recipients, b.recipients)
	candidates := make([]model.CandidateDocument, len(b.candidates))
	copy(candidates, b.candidates)
	return recipients, candidates, b.nameField
}

// Recipient возвращает получателя по индексу строки.
func (b *Batch) Recipient(index int) (model.Recipient, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, r := range b.recipients {
		if r.Index == index {
			return r, true
		}
	}
	return model.Recipient{}, false
}

// Candidate возвращает документ по имени файла.
func (b *Batch) Candidate(filename string) (model.CandidateDocument, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, c := range b.candidates {
		if c.Filename == filename {
			return c, true
		}
	}
	return model.CandidateDocument{}, false
}

// Store — in-memory хранилище партий с TTL-вытеснением.
type Store struct {
	c *cache.Cache
}

func New(ttl time.Duration) *Store {
	return &Store{c: cache.New(ttl, 10*time.Minute)}
}

func (s *Store) Create() *Batch {
	b := &Batch{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Table:     service.NewTable(),
	}
	s.c.SetDefault(b.ID, b)
	return b
}

func (s *Store) Get(id string) (*Batch, bool) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Batch), true
}
