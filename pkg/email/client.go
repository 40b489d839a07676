package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

// Client handles email sending operations.
type Client struct {
	host     string
	port     string
	username string
	password string
	from     string
	secure   bool
}

// NewClient creates a new email client.
func NewClient(host, port, username, password, from string, secure bool) *Client {
	return &Client{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		secure:   secure,
	}
}

// EmailOptions represents the options for sending an email.
type EmailOptions struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendEmail sends an email with HTML content.
func (c *Client) SendEmail(opts EmailOptions) error {
	wrappedHTML := c.wrapHTMLTemplate(opts.HTML)
	message := c.buildMessage(opts.To, opts.Subject, wrappedHTML, opts.Text)

	auth := smtp.PlainAuth("", c.username, c.password, c.host)
	addr := fmt.Sprintf("%s:%s", c.host, c.port)

	if err := smtp.SendMail(addr, auth, c.from, []string{opts.To}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendWelcome sends a welcome email to a newly registered member.
func (c *Client) SendWelcome(to, userName string) error {
	html := fmt.Sprintf(`
		<p>%s님, 안녕하세요.</p>
		<p>노무사 아카데미 가입을 환영합니다.</p>
		<p>강의 목록에서 원하는 강의를 찾아 수강신청을 시작해 보세요.</p>
	`, userName)

	return c.SendEmail(EmailOptions{
		To:      to,
		Subject: "노무사 아카데미 가입을 환영합니다",
		HTML:    html,
		Text:    fmt.Sprintf("%s님, 노무사 아카데미 가입을 환영합니다.", userName),
	})
}

// SendEnrollmentDecision notifies a member that an enrollment request was
// approved or rejected.
func (c *Client) SendEnrollmentDecision(to, userName, courseTitle, statusLabel string) error {
	html := fmt.Sprintf(`
		<p>%s님, 안녕하세요.</p>
		<p>신청하신 강의 <strong>%s</strong>의 수강신청이 <strong>%s</strong> 처리되었습니다.</p>
	`, userName, courseTitle, statusLabel)

	return c.SendEmail(EmailOptions{
		To:      to,
		Subject: fmt.Sprintf("수강신청 결과 안내: %s", courseTitle),
		HTML:    html,
		Text:    fmt.Sprintf("%s님, 강의 %s의 수강신청이 %s 처리되었습니다.", userName, courseTitle, statusLabel),
	})
}

// wrapHTMLTemplate wraps the HTML content in the standard notification shell.
func (c *Client) wrapHTMLTemplate(content string) string {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background: #f9f9f9;">
    <div style="padding: 32px;">
        <div style="max-width: 600px; margin: auto; background: #fff; border-radius: 8px; box-shadow: 0 2px 8px #eee; padding: 32px;">
            <div style="text-align: center; margin-bottom: 24px;">
                <h2 style="color: #2a7ae2; margin: 0;">노무사 아카데미</h2>
            </div>
            <div style="font-size: 16px; color: #333;">
                {{.Content}}
            </div>
            <div style="margin-top: 32px; text-align: center; color: #aaa; font-size: 12px;">
                &copy; {{.Year}} Nomu Academy. All rights reserved.
            </div>
        </div>
    </div>
</body>
</html>
`

	t := template.Must(template.New("email").Parse(tmpl))
	var buf bytes.Buffer
	data := map[string]interface{}{
		"Content": template.HTML(content),
		"Year":    time.Now().Year(),
	}

	if err := t.Execute(&buf, data); err != nil {
		// Fallback to plain content if template fails
		return content
	}

	return buf.String()
}

// buildMessage constructs the email message with headers.
func (c *Client) buildMessage(to, subject, html, text string) string {
	from := c.from
	if from == "" {
		from = "noreply@example.com"
	}

	msg := fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: multipart/alternative; boundary=\"boundary42\"\r\n"
	msg += "\r\n"

	if text != "" {
		msg += "--boundary42\r\n"
		msg += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
		msg += "\r\n"
		msg += text + "\r\n"
	}

	msg += "--boundary42\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += "\r\n"
	msg += html + "\r\n"
	msg += "--boundary42--\r\n"

	return msg
}
