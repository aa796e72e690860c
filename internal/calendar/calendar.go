// Package calendar exports planned meals as an iCalendar file so users can
// pull their week into whatever calendar app they already use.
package calendar

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"mealplex/internal/dish"
	"mealplex/internal/planner"
)

// MealEvent is a single planned meal placed on the calendar.
type MealEvent struct {
	Date     time.Time
	Slot     dish.MealSlot
	DishName string
}

// ExportResult reports how an export went.
type ExportResult struct {
	Success bool
	Count   int
	Err     error
}

// slotTiming fixes when each meal lands on the day and how long it blocks.
type slotTiming struct {
	hour     int
	minute   int
	duration time.Duration
	emoji    string
}

var slotTimings = map[dish.MealSlot]slotTiming{
	dish.Breakfast: {8, 0, 30 * time.Minute, "🍳"},
	dish.Lunch:     {12, 30, 45 * time.Minute, "🍛"},
	dish.Snack:     {16, 0, 15 * time.Minute, "☕"},
	dish.Dinner:    {19, 0, 60 * time.Minute, "🍽️"},
}

var slotOrder = map[dish.MealSlot]int{
	dish.Breakfast: 0,
	dish.Lunch:     1,
	dish.Snack:     2,
	dish.Dinner:    3,
}

// BuildWeekEvents collects the planned meals for the window starting at
// start, resolving dish ids through dishName. Unresolvable ids are skipped.
func BuildWeekEvents(plan planner.Plan, start time.Time, days int, dishName func(id string) (string, bool)) []MealEvent {
	var events []MealEvent
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		day, ok := plan[date.Format("2006-01-02")]
		if !ok {
			continue
		}
		for slot, ids := range day {
			for _, id := range ids {
				name, ok := dishName(id)
				if !ok {
					continue
				}
				events = append(events, MealEvent{Date: date, Slot: slot, DishName: name})
			}
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return slotOrder[events[i].Slot] < slotOrder[events[j].Slot]
	})
	return events
}

// WriteICS renders the events as an iCalendar stream.
func WriteICS(w io.Writer, events []MealEvent, now time.Time) error {
	if len(events) == 0 {
		return fmt.Errorf("no meals planned for this week")
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//mealplex//meal planner//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	stamp := now.UTC().Format("20060102T150405Z")
	for i, ev := range events {
		timing := slotTimings[ev.Slot]
		startAt := time.Date(ev.Date.Year(), ev.Date.Month(), ev.Date.Day(), timing.hour, timing.minute, 0, 0, ev.Date.Location())
		endAt := startAt.Add(timing.duration)

		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:mealplex-%s-%s-%d\r\n", ev.Date.Format("20060102"), ev.Slot, i)
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(&b, "DTSTART:%s\r\n", startAt.Format("20060102T150405"))
		fmt.Fprintf(&b, "DTEND:%s\r\n", endAt.Format("20060102T150405"))
		fmt.Fprintf(&b, "SUMMARY:%s %s: %s\r\n", timing.emoji, titleSlot(ev.Slot), escapeText(ev.DishName))
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ExportWeek writes a week of planned meals to an .ics file at path.
func ExportWeek(path string, plan planner.Plan, start time.Time, days int, dishName func(id string) (string, bool)) ExportResult {
	events := BuildWeekEvents(plan, start, days, dishName)
	if len(events) == 0 {
		return ExportResult{Err: fmt.Errorf("no meals planned between %s and %s", start.Format("2006-01-02"), start.AddDate(0, 0, days-1).Format("2006-01-02"))}
	}

	f, err := os.Create(path)
	if err != nil {
		return ExportResult{Err: fmt.Errorf("failed to create calendar file: %w", err)}
	}
	defer f.Close()

	if err := WriteICS(f, events, time.Now()); err != nil {
		return ExportResult{Err: err}
	}
	return ExportResult{Success: true, Count: len(events)}
}

func titleSlot(slot dish.MealSlot) string {
	s := string(slot)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// escapeText applies iCalendar TEXT escaping.
func escapeText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
