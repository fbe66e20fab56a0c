package notifiers

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"

	gomail "github.com/wneessen/go-mail"

	"github.com/davorm/dailybrief/models"
)

//go:embed templates/digest.txt.tmpl templates/digest.html.tmpl
var emailTemplates embed.FS

var (
	textTemplate = texttemplate.Must(texttemplate.ParseFS(emailTemplates, "templates/digest.txt.tmpl"))
	htmlTemplate = htmltemplate.Must(htmltemplate.ParseFS(emailTemplates, "templates/digest.html.tmpl"))
)

type Mailer struct {
	smtpHost string
	smtpPort int
	from     string
	password string
}

func NewMailer(smtpHost string, smtpPort int, from, password string) *Mailer {
	return &Mailer{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		from:     from,
		password: password,
	}
}

// DigestEmail renders the newsletter in both plain-text and HTML form.
// Entries keep their input order in both bodies.
func (m *Mailer) DigestEmail(to string, entries []models.DigestEntry) (models.Email, error) {
	if len(entries) == 0 {
		return models.Email{}, fmt.Errorf("no digest entries")
	}

	subject := fmt.Sprintf("Your Daily AI News Update (%d stories)", len(entries))

	tmplData := struct {
		Entries []models.DigestEntry
	}{
		Entries: entries,
	}

	var textBuf bytes.Buffer
	if err := textTemplate.ExecuteTemplate(&textBuf, "digest.txt.tmpl", tmplData); err != nil {
		return models.Email{}, fmt.Errorf("render digest text template: %w", err)
	}

	var htmlBuf bytes.Buffer
	if err := htmlTemplate.ExecuteTemplate(&htmlBuf, "digest.html.tmpl", tmplData); err != nil {
		return models.Email{}, fmt.Errorf("render digest html template: %w", err)
	}

	return models.Email{
		To:       to,
		Subject:  subject,
		TextBody: textBuf.String(),
		HTMLBody: htmlBuf.String(),
	}, nil
}

// Send delivers the email over implicit-TLS SMTP. The session lives only for
// the duration of the call.
func (m *Mailer) Send(email models.Email) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, email.TextBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, email.HTMLBody)

	client, err := gomail.NewClient(m.smtpHost,
		gomail.WithPort(m.smtpPort),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.from),
		gomail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		slog.Error("Failed to send email", "error", err)
		return err
	}

	slog.Info("email sent", "recipient", email.To, "subject", email.Subject)
	return nil
}
