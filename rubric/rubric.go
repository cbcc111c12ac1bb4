package rubric

import (
	"errors"
	"strings"

	"github.com/Dosada05/hackhub/models"
)

// Field — одно из четырёх фиксированных числовых полей оценки на бэкенде.
// Какими бы ни были настроенные критерии хакатона, сохраняются только они.
type Field string

const (
	FieldInnovation   Field = "score_innovation"
	FieldFeasibility  Field = "score_feasibility"
	FieldExecution    Field = "score_execution"
	FieldPresentation Field = "score_presentation"
)

// FieldOrder — фиксированный порядок полей для позиционного фолбэка.
var FieldOrder = [4]Field{FieldInnovation, FieldFeasibility, FieldExecution, FieldPresentation}

const (
	// DefaultMaxScore — максимум критерия, если конфигурация его не задала.
	DefaultMaxScore = 10
	// MinFeedbackLength — минимальная длина текстового отзыва для сабмита.
	MinFeedbackLength = 15
)

var (
	ErrIncompleteScores = errors.New("every rubric criterion must have a score greater than zero")
	ErrFeedbackTooShort = errors.New("feedback must be at least 15 characters long")
)

// Criterion — критерий оценивания, как его видит судья в форме.
type Criterion struct {
	Name        string
	Description string
	Weight      float64
	MaxScore    int
}

// Entry — критерий вместе с выставленным судьёй баллом.
type Entry struct {
	Criterion Criterion
	Score     int
}

// keyword-классификация имён критериев по четырём полям бэкенда.
// Совпадение — регистронезависимый поиск подстроки.
var fieldKeywords = []struct {
	field    Field
	keywords []string
}{
	{FieldInnovation, []string{"innov", "creativ", "original"}},
	{FieldFeasibility, []string{"feas", "complex", "technical", "viab"}},
	{FieldExecution, []string{"exec", "implement", "quality", "code"}},
	{FieldPresentation, []string{"present", "design", "ux", "ui", "visual", "utility", "impact"}},
}

// Classify пытается отнести критерий к полю бэкенда по ключевым словам
// в имени. Второе значение false, если ни один набор не совпал.
func Classify(name string) (Field, bool) {
	lower := strings.ToLower(name)
	for _, set := range fieldKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.field, true
			}
		}
	}
	return "", false
}

// FieldFor возвращает поле бэкенда для критерия с данным индексом.
// Нераспознанные имена получают позиционное назначение: index % 4.
func FieldFor(c Criterion, index int) Field {
	if field, ok := Classify(c.Name); ok {
		return field
	}
	return FieldOrder[index%len(FieldOrder)]
}

// DefaultCriteria — жёстко заданная рубрика на случай, когда хакатон
// не настроил собственных критериев.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{Name: "Innovation", Description: "Novelty and creativity of the idea", MaxScore: DefaultMaxScore},
		{Name: "Technical Complexity", Description: "Depth and difficulty of the implementation", MaxScore: DefaultMaxScore},
		{Name: "Design & UX", Description: "Polish and usability of the product", MaxScore: DefaultMaxScore},
		{Name: "Utility & Impact", Description: "Usefulness and potential reach", MaxScore: DefaultMaxScore},
	}
}

// FromConfig строит рубрику из конфигурации хакатона; при пустой
// конфигурации возвращается рубрика по умолчанию.
func FromConfig(configured []models.RubricCriteria) []Criterion {
	if len(configured) == 0 {
		return DefaultCriteria()
	}
	criteria := make([]Criterion, 0, len(configured))
	for _, c := range configured {
		maxScore := c.MaxScore
		if maxScore <= 0 {
			maxScore = DefaultMaxScore
		}
		criteria = append(criteria, Criterion{
			Name:        c.Name,
			Description: c.Description,
			Weight:      c.Weight,
			MaxScore:    maxScore,
		})
	}
	return criteria
}

// Scores — четыре поля оценки в том виде, в котором их хранит бэкенд.
type Scores struct {
	Innovation   int
	Feasibility  int
	Execution    int
	Presentation int
}

func (s Scores) Get(f Field) int {
	switch f {
	case FieldInnovation:
		return s.Innovation
	case FieldFeasibility:
		return s.Feasibility
	case FieldExecution:
		return s.Execution
	case FieldPresentation:
		return s.Presentation
	}
	return 0
}

func (s *Scores) set(f Field, v int) {
	switch f {
	case FieldInnovation:
		s.Innovation = v
	case FieldFeasibility:
		s.Feasibility = v
	case FieldExecution:
		s.Execution = v
	case FieldPresentation:
		s.Presentation = v
	}
}

// Collapse сводит баллы по критериям UI к четырём полям бэкенда.
// При коллизии (несколько критериев на одно поле) берётся максимум,
// не сумма и не среднее.
func Collapse(entries []Entry) Scores {
	var s Scores
	for i, e := range entries {
		field := FieldFor(e.Criterion, i)
		if e.Score > s.Get(field) {
			s.set(field, e.Score)
		}
	}
	return s
}

// CoerceNonzero поднимает нулевые поля до 1. Применяется только перед
// финальным сабмитом: бэкенд отклоняет нулевые значения, черновики —
// нет.
func (s Scores) CoerceNonzero() Scores {
	for _, f := range FieldOrder {
		if s.Get(f) == 0 {
			s.set(f, 1)
		}
	}
	return s
}

// ValidateSubmit — клиентский гейт финального сабмита: все критерии
// оценены (> 0) и отзыв не короче MinFeedbackLength. Нарушение
// блокирует сабмит до какого-либо сетевого вызова.
func ValidateSubmit(entries []Entry, feedback string) error {
	for _, e := range entries {
		if e.Score <= 0 {
			return ErrIncompleteScores
		}
	}
	if len(strings.TrimSpace(feedback)) < MinFeedbackLength {
		return ErrFeedbackTooShort
	}
	return nil
}

// Total считает итог, который видит судья: сумма баллов по критериям UI
// против суммы их максимумов, а не по четырём свёрнутым полям.
func Total(entries []Entry) (total, max int) {
	for _, e := range entries {
		total += e.Score
		if e.Criterion.MaxScore > 0 {
			max += e.Criterion.MaxScore
		} else {
			max += DefaultMaxScore
		}
	}
	return total, max
}
