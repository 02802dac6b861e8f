package services

import (
	"time"

	"crm-api/models"
)

type Section string

const (
	SectionToday     Section = "Today"
	SectionYesterday Section = "Yesterday"
	SectionThisWeek  Section = "This Week"
	SectionEarlier   Section = "Earlier"
)

// sectionOrder is the display order of the sections.
var sectionOrder = []Section{SectionToday, SectionYesterday, SectionThisWeek, SectionEarlier}

// NotificationSection is one titled group in the notification feed.
type NotificationSection struct {
	Title Section               `json:"title"`
	Data  []models.Notification `json:"data"`
}

// startOfDay truncates t to local midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SectionFor classifies ts relative to now. Days are calendar days in now's location and
// the week starts on Sunday. Days after today are placed in Earlier.
func SectionFor(ts, now time.Time) Section {
	loc := now.Location()
	today := startOfDay(now, loc)
	yesterday := today.AddDate(0, 0, -1)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	day := startOfDay(ts, loc)

	switch {
	case day.Equal(today):
		return SectionToday
	case day.Equal(yesterday):
		return SectionYesterday
	case !day.Before(weekStart) && day.Before(today):
		return SectionThisWeek
	default:
		return SectionEarlier
	}
}

// GroupNotifications buckets items by SectionFor, keeping input order inside each
// section. Sections come out in display order and empty ones are dropped.
func GroupNotifications(items []models.Notification, now time.Time) []NotificationSection {
	buckets := make(map[Section][]models.Notification, len(sectionOrder))
	for _, n := range items {
		s := SectionFor(n.CreateAt, now)
		buckets[s] = append(buckets[s], n)
	}

	out := make([]NotificationSection, 0, len(sectionOrder))
	for _, s := range sectionOrder {
		if len(buckets[s]) == 0 {
			continue
		}
		out = append(out, NotificationSection{Title: s, Data: buckets[s]})
	}
	return out
}
