package schedule

import (
	"time"

	"github.com/Dosada05/hackhub/models"
)

// Event — событие, прикрепляемое к ячейке сетки по точному совпадению
// года, месяца и дня. Часовые пояса не нормализуются: семантика
// локального времени сохранена намеренно.
type Event struct {
	Date     time.Time
	Title    string
	Category string
}

const dateLayout = "2006-01-02"

// MonthGrid строит месячную сетку календаря: хвост предыдущего месяца,
// все дни текущего и столько дней следующего, чтобы заполнить сетку до
// кратной семи длины. Минимум пять строк, итого всегда 35 или 42 ячейки.
func MonthGrid(ref time.Time) []models.CalendarCell {
	year, month, _ := ref.Date()
	loc := ref.Location()

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lead := int(first.Weekday()) // неделя начинается с воскресенья
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	daysInPrev := time.Date(year, month, 0, 0, 0, 0, 0, loc).Day()

	rows := (lead + daysInMonth + 6) / 7
	if rows < 5 {
		rows = 5
	}
	total := rows * 7

	cells := make([]models.CalendarCell, 0, total)

	for i := lead; i > 0; i-- {
		day := daysInPrev - i + 1
		date := time.Date(year, month-1, day, 0, 0, 0, 0, loc)
		cells = append(cells, models.CalendarCell{
			Day:  day,
			Date: date.Format(dateLayout),
		})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, loc)
		cells = append(cells, models.CalendarCell{
			Day:            day,
			InCurrentMonth: true,
			Date:           date.Format(dateLayout),
		})
	}

	for day := 1; len(cells) < total; day++ {
		date := time.Date(year, month+1, day, 0, 0, 0, 0, loc)
		cells = append(cells, models.CalendarCell{
			Day:  day,
			Date: date.Format(dateLayout),
		})
	}

	return cells
}

// AttachEvents раскладывает события по ячейкам сетки.
func AttachEvents(cells []models.CalendarCell, events []Event) []models.CalendarCell {
	if len(events) == 0 {
		return cells
	}

	byDate := make(map[string][]models.CalendarEvent, len(events))
	for _, e := range events {
		key := e.Date.Format(dateLayout)
		byDate[key] = append(byDate[key], models.CalendarEvent{
			Title:    e.Title,
			Category: e.Category,
		})
	}

	for i := range cells {
		if attached, ok := byDate[cells[i].Date]; ok {
			cells[i].Events = attached
		}
	}
	return cells
}
