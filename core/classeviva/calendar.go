package classeviva

import (
	"fmt"
	"strings"
	"time"

	"github.com/sysregister/sysregister/core/ics"
)

// FallbackLabel fills SUMMARY, LOCATION and CATEGORIES when the agenda
// entry carries no usable text.
const FallbackLabel = "ClasseViva"

const syncStampLayout = "02/01/2006, 15:04:05"

// upstream timestamps arrive as RFC3339 with offset; older payloads drop
// the offset.
var datetimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

func parseDatetime(s string, fallback time.Time) time.Time {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

// OrganizerEmail synthesizes first.last@<domain> from a display name.
func OrganizerEmail(name, domain string) string {
	local := strings.ReplaceAll(strings.ToLower(name), " ", ".")
	return local + "@" + domain
}

// CalendarEvents reshapes agenda entries into exportable calendar events.
// The mapping is total and order-preserving: one event per entry, every
// field defaulted when absent.
func CalendarEvents(agenda []AgendaEvent, now time.Time, organizerDomain string) []ics.Event {
	events := make([]ics.Event, 0, len(agenda))
	for i, item := range agenda {
		begin := parseDatetime(item.EvtDatetimeBegin, now)
		end := parseDatetime(item.EvtDatetimeEnd, begin.Add(time.Hour))
		minutes := int(end.Sub(begin).Round(time.Minute) / time.Minute)
		if minutes < 0 {
			minutes = 0
		}

		summary := item.SubjectDesc
		if summary == "" {
			summary = item.AuthorName
		}
		if summary == "" {
			summary = FallbackLabel + " Event"
		}

		location := item.ClassDesc
		if location == "" {
			location = FallbackLabel
		}
		category := item.SubjectDesc
		if category == "" {
			category = FallbackLabel
		}

		description := fmt.Sprintf(
			"%s\n\nTeacher: %s\nClass: %s\n\nSynced from ClasseViva on %s",
			item.EvtText, item.AuthorName, item.ClassDesc, now.Format(syncStampLayout),
		)

		events = append(events, ics.Event{
			UID:            ics.UID(now, i),
			Summary:        summary,
			Description:    description,
			Start:          begin,
			DurationMin:    minutes,
			OrganizerName:  item.AuthorName,
			OrganizerEmail: OrganizerEmail(item.AuthorName, organizerDomain),
			Location:       location,
			Categories:     []string{category},
		})
	}
	return events
}
