// Package templates renders the HTML bodies for CarLog emails.
package templates

import (
	"fmt"
	"html"
	"strings"
)

// ReminderItem is one interval line in the daily maintenance digest.
type ReminderItem struct {
	VehicleName  string // e.g. "2019 Honda Civic"
	VIN          string
	ServiceType  string
	Status       string // "overdue" or "due_soon"
	MilesUntil   *int   // nil when the interval has no mileage signal
	DueDate      string // formatted date, empty when none
}

// RenderReminderDigestEmail generates the HTML for the daily maintenance
// reminder digest listing overdue and due-soon intervals across all vehicles.
func RenderReminderDigestEmail(items []ReminderItem) string {
	var rows strings.Builder
	for _, item := range items {
		badge := `<span class="badge badge-soon">Due soon</span>`
		if item.Status == "overdue" {
			badge = `<span class="badge badge-overdue">Overdue</span>`
		}

		detail := ""
		if item.MilesUntil != nil {
			if *item.MilesUntil <= 0 {
				detail = fmt.Sprintf("%d miles past due", -*item.MilesUntil)
			} else {
				detail = fmt.Sprintf("%d miles remaining", *item.MilesUntil)
			}
		}
		if item.DueDate != "" {
			if detail != "" {
				detail += " · "
			}
			detail += "due " + html.EscapeString(item.DueDate)
		}

		rows.WriteString(fmt.Sprintf(`
        <div class="item">
          <div class="item-header">%s <span class="vin">%s</span></div>
          <div class="item-body">%s %s<div class="detail">%s</div></div>
        </div>`,
			html.EscapeString(item.VehicleName),
			html.EscapeString(item.VIN),
			html.EscapeString(item.ServiceType),
			badge,
			detail,
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Maintenance Reminders - CarLog</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #0a0a0f; }
    .container { max-width: 600px; margin: 0 auto; background-color: #12121f; }
    .header { background: linear-gradient(135deg, #34d399 0%%, #059669 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #000; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #e5e7eb; }
    .item { background: rgba(255,255,255,0.04); border: 1px solid rgba(255,255,255,0.08); border-radius: 12px; padding: 16px 20px; margin: 12px 0; }
    .item-header { color: #fff; font-weight: 600; margin-bottom: 6px; }
    .vin { color: #6b7280; font-size: 12px; font-weight: 400; margin-left: 8px; }
    .item-body { font-size: 14px; }
    .detail { color: #9ca3af; font-size: 13px; margin-top: 4px; }
    .badge { display: inline-block; padding: 2px 10px; border-radius: 10px; font-size: 12px; font-weight: 700; margin-left: 6px; }
    .badge-overdue { background: rgba(248, 113, 113, 0.15); color: #f87171; }
    .badge-soon { background: rgba(251, 191, 36, 0.15); color: #fbbf24; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid rgba(255,255,255,0.1); }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🔧 Maintenance Reminders</h1>
    </div>
    <div class="content">
      <p>The following services need your attention:</p>
      %s
      <p style="margin-top: 30px; color: #9ca3af; font-size: 13px;">Log the service in CarLog once it's done and the schedule will update automatically.</p>
    </div>
    <div class="footer">
      <p>You're receiving this because maintenance reminders are enabled in your CarLog settings.</p>
    </div>
  </div>
</body>
</html>`, rows.String())
}
