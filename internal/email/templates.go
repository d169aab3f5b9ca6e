package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

// ContactData - данные шаблона уведомления о заявке
type ContactData struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	SubmittedAt time.Time
	AdminURL    string
}

const contactHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>New contact submission</h2>
  <table cellpadding="6">
    <tr><td><b>Name</b></td><td>{{.Name}}</td></tr>
    <tr><td><b>Email</b></td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
    {{if .Phone}}<tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>{{end}}
    {{if .Subject}}<tr><td><b>Subject</b></td><td>{{.Subject}}</td></tr>{{end}}
    <tr><td><b>Received</b></td><td>{{.SubmittedAt.Format "2006-01-02 15:04 MST"}}</td></tr>
  </table>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
  {{if .AdminURL}}<p><a href="{{.AdminURL}}">Open in admin panel</a></p>{{end}}
</body>
</html>`

const contactText = `New contact submission

Name: {{.Name}}
Email: {{.Email}}
{{if .Phone}}Phone: {{.Phone}}
{{end}}{{if .Subject}}Subject: {{.Subject}}
{{end}}Received: {{.SubmittedAt.Format "2006-01-02 15:04 MST"}}

{{.Message}}
`

var (
	contactHTMLTpl = htmltemplate.Must(htmltemplate.New("contact_html").Parse(contactHTML))
	contactTextTpl = texttemplate.Must(texttemplate.New("contact_text").Parse(contactText))
)

// RenderContact возвращает html и текстовую версию письма
func RenderContact(data ContactData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err := contactHTMLTpl.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("failed to render template: %w", err)
	}
	if err := contactTextTpl.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("failed to render template: %w", err)
	}
	return hb.String(), tb.String(), nil
}
