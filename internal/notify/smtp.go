package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/hireboard/api/internal/models"
)

var statusLine = map[models.ApplicationStatus]string{
	models.StatusApplied:     "we received your application",
	models.StatusScreened:    "your application passed initial screening",
	models.StatusInterviewed: "you have been moved to the interview stage",
	models.StatusOffer:       "we would like to extend you an offer",
	models.StatusHired:       "welcome aboard",
	models.StatusRejected:    "we will not be moving forward with your application",
}

// SMTPNotifier sends plain-text status mails over a single SMTP relay.
type SMTPNotifier struct {
	Addr string // host:port
	From string
	Auth smtp.Auth
}

func NewSMTPNotifier(addr, from string, auth smtp.Auth) *SMTPNotifier {
	return &SMTPNotifier{Addr: addr, From: from, Auth: auth}
}

func (n *SMTPNotifier) StatusChanged(_ context.Context, app *models.Application, _, to models.ApplicationStatus) error {
	if app.CandidateEmail == "" {
		return nil
	}

	line, ok := statusLine[to]
	if !ok {
		line = fmt.Sprintf("your application status is now %q", to)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.From)
	fmt.Fprintf(&b, "To: %s\r\n", app.CandidateEmail)
	fmt.Fprintf(&b, "Subject: Application update\r\n\r\n")
	fmt.Fprintf(&b, "Hi %s,\r\n\r\nAn update on your application: %s.\r\n", app.CandidateName, line)

	return smtp.SendMail(n.Addr, n.Auth, n.From, []string{app.CandidateEmail}, []byte(b.String()))
}

func (n *SMTPNotifier) JobPosted(_ context.Context, alert *models.JobAlert, job *models.Job) error {
	if alert.Email == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.From)
	fmt.Fprintf(&b, "To: %s\r\n", alert.Email)
	fmt.Fprintf(&b, "Subject: New opening: %s\r\n\r\n", job.Title)
	fmt.Fprintf(&b, "A new position just opened: %s (%s).\r\n", job.Title, job.Location)

	return smtp.SendMail(n.Addr, n.Auth, n.From, []string{alert.Email}, []byte(b.String()))
}
