package schedule

import (
	"testing"
	"time"

	"github.com/Dosada05/hackhub/models"
)

func TestMonthGrid_LengthIsMultipleOfSeven(t *testing.T) {
	// Двенадцать месяцев подряд, включая февраль невисокосного года.
	for m := time.Month(1); m <= 12; m++ {
		ref := time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC)
		cells := MonthGrid(ref)

		if len(cells)%7 != 0 {
			t.Errorf("%s: grid length %d is not a multiple of 7", m, len(cells))
		}
		if len(cells) < 35 {
			t.Errorf("%s: grid length %d is below the five-row minimum", m, len(cells))
		}
	}
}

func TestMonthGrid_CurrentMonthIsContiguous(t *testing.T) {
	ref := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	cells := MonthGrid(ref)

	first, last := -1, -1
	for i, c := range cells {
		if c.InCurrentMonth {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		t.Fatal("no current-month cells in grid")
	}
	for i := first; i <= last; i++ {
		if !cells[i].InCurrentMonth {
			t.Fatalf("current-month cells are not contiguous: gap at index %d", i)
		}
	}
	if last-first+1 != 30 {
		t.Fatalf("September must contribute 30 cells, got %d", last-first+1)
	}
}

func TestMonthGrid_MonthStartingWednesday(t *testing.T) {
	// Июль 2026 начинается в среду: три ведущих ячейки из июня.
	ref := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)
	cells := MonthGrid(ref)

	for i := 0; i < 3; i++ {
		if cells[i].InCurrentMonth {
			t.Fatalf("cell %d must belong to the previous month", i)
		}
	}
	if cells[0].Day != 28 || cells[1].Day != 29 || cells[2].Day != 30 {
		t.Fatalf("leading cells must be June 28-30, got %d %d %d", cells[0].Day, cells[1].Day, cells[2].Day)
	}
	if !cells[3].InCurrentMonth || cells[3].Day != 1 {
		t.Fatalf("cell 3 must be July 1, got day %d (current=%v)", cells[3].Day, cells[3].InCurrentMonth)
	}
	if cells[3].Date != "2026-07-01" {
		t.Fatalf("cell date = %q, want 2026-07-01", cells[3].Date)
	}
}

func TestMonthGrid_ShortMonthPadsToFiveRows(t *testing.T) {
	// Февраль 2026 начинается в воскресенье и занимает ровно четыре
	// строки: сетка добивается пятой строкой из марта.
	ref := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	cells := MonthGrid(ref)

	if len(cells) != 35 {
		t.Fatalf("grid length = %d, want 35", len(cells))
	}
	tail := cells[28:]
	for i, c := range tail {
		if c.InCurrentMonth {
			t.Fatalf("trailing cell %d must belong to the next month", 28+i)
		}
		if c.Day != i+1 {
			t.Fatalf("trailing cell %d: day = %d, want %d", 28+i, c.Day, i+1)
		}
	}
}

func TestAttachEvents(t *testing.T) {
	ref := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	cells := MonthGrid(ref)

	events := []Event{
		{Date: time.Date(2026, time.July, 4, 9, 30, 0, 0, time.UTC), Title: "Kickoff", Category: "start"},
		{Date: time.Date(2026, time.July, 4, 18, 0, 0, 0, time.UTC), Title: "Team freeze", Category: "deadline"},
		{Date: time.Date(2026, time.June, 29, 0, 0, 0, 0, time.UTC), Title: "Registration closes", Category: "deadline"},
	}
	cells = AttachEvents(cells, events)

	var july4, june29 *models.CalendarCell
	for i := range cells {
		switch cells[i].Date {
		case "2026-07-04":
			july4 = &cells[i]
		case "2026-06-29":
			june29 = &cells[i]
		}
	}
	if july4 == nil || len(july4.Events) != 2 {
		t.Fatalf("July 4 must carry both events, got %+v", july4)
	}
	if july4.Events[0].Title != "Kickoff" {
		t.Errorf("event order must follow input order, got %q first", july4.Events[0].Title)
	}
	// События попадают и в ячейки соседних месяцев, видимые в сетке.
	if june29 == nil || len(june29.Events) != 1 {
		t.Fatalf("June 29 spillover cell must carry its event, got %+v", june29)
	}
}
