package rubric

import "github.com/Dosada05/hackhub/models"

// Status — состояние оценки пары команда × судья.
//
// none → draft → submitted, из любого состояния → locked, когда хакатон
// завершён или результаты опубликованы. После submitted оценка может
// обновляться повторно через отдельный update-эндпоинт, пока не locked.
type Status string

const (
	StatusNone      Status = "none"
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusLocked    Status = "locked"
)

// StateOf определяет состояние по существующей оценке и замку хакатона.
func StateOf(eval *models.Evaluation, hackathonLocked bool) Status {
	if hackathonLocked {
		return StatusLocked
	}
	if eval == nil {
		return StatusNone
	}
	switch eval.Status {
	case models.EvaluationSubmitted:
		return StatusSubmitted
	case models.EvaluationDraft:
		return StatusDraft
	}
	return StatusNone
}

// CanSaveDraft: сохранение черновика идемпотентно и разрешено всегда,
// пока хакатон не закрыт.
func CanSaveDraft(st Status) bool {
	return st != StatusLocked
}

// CanSubmit: первичный сабмит возможен из none или draft.
func CanSubmit(st Status) bool {
	return st == StatusNone || st == StatusDraft
}

// CanUpdate: уже отправленная оценка правится через update-эндпоинт,
// а не повторным прохождением create-пути.
func CanUpdate(st Status) bool {
	return st == StatusSubmitted
}
