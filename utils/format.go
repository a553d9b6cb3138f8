package utils

import "time"

// istZone is the fixed UTC+5:30 offset the dashboard uses for
// displayed timestamps, independent of the server's timezone.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// FormatISTDateTime renders a timestamp as DD/MM/YYYY HH:MM (24-hour)
// in IST. Zero timestamps render as an em dash placeholder.
func FormatISTDateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.In(istZone).Format("02/01/2006 15:04")
}
