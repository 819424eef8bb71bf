// Package ics renders VCALENDAR documents in the exact wire format consumed
// by calendar applications. The format is pinned: property order, basic
// local-time DTSTART/DTEND, literal "\n" escaping and CRLF joining must not
// change.
package ics

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProdID       = "-//SysRegister//ClasseViva Calendar//EN"
	CalendarName = "ClasseViva Agenda"
	CalendarDesc = "Agenda exported from ClasseViva"

	// UIDDomain is the fixed suffix of synthesized event UIDs.
	UIDDomain = "sysregister.app"

	dateLayout      = "20060102"
	localTimeLayout = "20060102T150405"
	utcTimeLayout   = "20060102T150405Z"
)

// Event is one agenda entry reshaped for export. All fields have defaults,
// so serialization cannot fail.
type Event struct {
	UID            string
	Summary        string
	Description    string
	Start          time.Time
	DurationMin    int
	OrganizerName  string
	OrganizerEmail string
	Location       string
	Categories     []string
}

// End is the event start plus its declared duration.
func (e Event) End() time.Time {
	return e.Start.Add(time.Duration(e.DurationMin) * time.Minute)
}

// Window computes the agenda export window: now minus months to now plus
// months, both as exactly eight digits (YYYYMMDD, no dashes).
func Window(now time.Time, months int) (start, end string) {
	start = now.UTC().AddDate(0, -months, 0).Format(dateLayout)
	end = now.UTC().AddDate(0, months, 0).Format(dateLayout)
	return start, end
}

// Escape folds embedded newlines into the two-character sequence `\n`.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}

// UID synthesizes a per-export unique identifier from a timestamp and the
// item index. UIDs need not be stable across exports.
func UID(now time.Time, index int) string {
	return fmt.Sprintf("classeviva-%d-%d@%s", now.UnixMilli(), index, UIDDomain)
}

// Document assembles the full VCALENDAR wrapper around one VEVENT block per
// event, joined by CRLF. now is used for the DTSTAMP of every event.
func Document(events []Event, now time.Time) string {
	header := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ProdID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:" + CalendarName,
		"X-WR-CALDESC:" + CalendarDesc,
	}, "\r\n")

	dtstamp := now.UTC().Format(utcTimeLayout)

	blocks := make([]string, 0, len(events)+2)
	blocks = append(blocks, header)
	for _, evt := range events {
		blocks = append(blocks, strings.Join([]string{
			"BEGIN:VEVENT",
			"UID:" + evt.UID,
			"DTSTART:" + evt.Start.Format(localTimeLayout),
			"DTEND:" + evt.End().Format(localTimeLayout),
			"SUMMARY:" + evt.Summary,
			"DESCRIPTION:" + Escape(evt.Description),
			fmt.Sprintf("ORGANIZER;CN=%s:MAILTO:%s", evt.OrganizerName, evt.OrganizerEmail),
			"LOCATION:" + evt.Location,
			"CATEGORIES:" + strings.Join(evt.Categories, ","),
			"DTSTAMP:" + dtstamp,
			"END:VEVENT",
		}, "\r\n"))
	}
	blocks = append(blocks, "END:VCALENDAR")

	return strings.Join(blocks, "\r\n")
}
