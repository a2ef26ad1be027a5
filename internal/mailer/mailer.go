package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"timeclock-backend/config"
	"timeclock-backend/internal/service"
)

// Mailer sends operational mail over plain SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewFromEnv() *Mailer {
	return &Mailer{
		host:     config.GetEnv("SMTP_HOST", "localhost"),
		port:     config.GetEnvAsInt("SMTP_PORT", 587),
		username: config.GetEnv("SMTP_USER", ""),
		password: config.GetEnv("SMTP_PASSWORD", ""),
		from:     config.GetEnv("SMTP_FROM", "timeclock@localhost"),
	}
}

// SendLateDigest mails the list of today's late arrivals.
func (m *Mailer) SendLateDigest(to, date string, late []service.DashboardEntry) error {
	var body strings.Builder
	fmt.Fprintf(&body, "<h3>Late arrivals for %s</h3>", date)
	if len(late) == 0 {
		body.WriteString("<p>No late arrivals today.</p>")
	} else {
		body.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>ID</th><th>Name</th><th>Clock In</th><th>Minutes Late</th></tr>")
		for _, entry := range late {
			fmt.Fprintf(&body, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>",
				entry.EmployeeID, entry.Name, entry.TimeIn, entry.MinutesLate)
		}
		body.WriteString("</table>")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Attendance: %d late arrival(s) on %s", len(late), date))
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send digest to %s: %w", to, err)
	}
	return nil
}
