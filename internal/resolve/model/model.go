package model

// Recipient — одна строка загруженной таблицы получателей.
// Fields хранит уже распарсенную запись (заголовок → значение);
// извлечение имени по NameField делает handler, не резолвер.
type Recipient struct {
	Index   int               `json:"index"`
	Fields  map[string]string `json:"fields"`
	Skipped bool              `json:"skipped,omitempty"`
}

// CandidateDocument — загруженный документ-кандидат. В сопоставлении
// участвует только имя файла, содержимое непрозрачно для резолвера.
type CandidateDocument struct {
	Filename string `json:"filename"`
	Content  []byte `json:"-"`
}

type MatchType string

const (
	MatchExact        MatchType = "exact"
	MatchPDFContains  MatchType = "pdf_contains"  // имя файла содержит имя получателя
	MatchNameContains MatchType = "name_contains" // имя получателя содержит имя файла
	MatchFuzzy        MatchType = "fuzzy"
)

// Пороги уверенности — внешний контракт (бейджи в UI), не менять.
const (
	TierHigh   = 90
	TierMedium = 70
)

type MatchResult struct {
	Recipient   int       `json:"recipient"`
	Filename    string    `json:"filename"`
	Confidence  int       `json:"confidence"` // 0..100
	Type        MatchType `json:"type"`
	NeedsReview bool      `json:"needsReview"`
}

// Tier возвращает имя яруса уверенности: high | medium | low.
func (m MatchResult) Tier() string {
	switch {
	case m.Confidence >= TierHigh:
		return "high"
	case m.Confidence >= TierMedium:
		return "medium"
	default:
		return "low"
	}
}

type AssignmentKind string

const (
	AssignmentAuto   AssignmentKind = "auto"
	AssignmentManual AssignmentKind = "manual"
)

// Assignment — тегированный вариант: либо авторасчёт (Auto), либо ручная
// привязка (Manual, только имя файла, без семантики уверенности).
// Конструируется только методами таблицы, чтобы «override всегда
// побеждает» держалось на уровне типа, а не проверок по месту.
type Assignment struct {
	Kind   AssignmentKind `json:"kind"`
	Auto   *MatchResult   `json:"auto,omitempty"`
	Manual string         `json:"manual,omitempty"`
}

// Filename — имя назначенного документа независимо от варианта.
func (a Assignment) Filename() string {
	if a.Kind == AssignmentManual {
		return a.Manual
	}
	if a.Auto != nil {
		return a.Auto.Filename
	}
	return ""
}

// Summary — агрегаты прогона для баннеров в UI.
type Summary struct {
	Attempted         int  `json:"attempted"` // получатели, дошедшие до ранжирования
	Matched           int  `json:"matched"`   // есть назначение (auto или manual)
	Unmatched         int  `json:"unmatched"` // пустое имя / пустой список кандидатов
	NeedsReview       int  `json:"needsReview"`
	MappingIncomplete bool `json:"mappingIncomplete"` // поле имени не задано
}
