package reminder

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/beauty-scheduler/internal/timezone"
)

const (
	NotificationKind  = "appointment_reminder"
	NotificationTitle = "Напоминание о записи"
)

// TimeBeforeLabel names an offset for the in-app notification body.
func TimeBeforeLabel(minutes int) string {
	switch minutes {
	case 1440:
		return "24 часа"
	case 180:
		return "3 часа"
	case 60:
		return "1 час"
	default:
		return fmt.Sprintf("%d минут", minutes)
	}
}

// LeadPhrase names an offset for the email ("через 3 часа").
func LeadPhrase(minutes int) string {
	switch minutes {
	case 1440:
		return "завтра"
	case 180:
		return "через 3 часа"
	case 60:
		return "через 1 час"
	case 30:
		return "через 30 минут"
	case 15:
		return "через 15 минут"
	default:
		return fmt.Sprintf("через %d минут", minutes)
	}
}

func NotificationBody(c domain.Candidate, offset int) string {
	return fmt.Sprintf("Запись через %s: %s", TimeBeforeLabel(offset), c.Service)
}

func EmailSubject(c domain.Candidate) string {
	return "Напоминание о записи - " + c.Service
}

var emailTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #E87FAF, #D94E8C); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #fff; padding: 30px; border: 1px solid #ddd; border-top: none; }
    .appointment-box { background: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #E87FAF; }
    .appointment-box strong { color: #D94E8C; }
    .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    .button { display: inline-block; padding: 12px 24px; background: #E87FAF; color: white; text-decoration: none; border-radius: 6px; margin-top: 15px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>Напоминание о записи</h1></div>
    <div class="content">
      <p>Здравствуйте{{if .MasterName}}, {{.MasterName}}{{end}}!</p>
      <p>Напоминаем, что у вас запись <strong>{{.Lead}}</strong>:</p>
      <div class="appointment-box">
        <p><strong>Услуга:</strong> {{.Service}}</p>
        <p><strong>Дата и время:</strong> {{.When}}</p>
        {{- if .Comment}}
        <p><strong>Комментарий:</strong> {{.Comment}}</p>
        {{- end}}
        <p><strong>Клиент:</strong> {{.ClientName}}</p>
        <p><strong>Телефон:</strong> {{.ClientPhone}}</p>
      </div>
      <p>Ждем вас!</p>
      {{- if .FrontendURL}}
      <a href="{{.FrontendURL}}" class="button">Открыть ЯКраш</a>
      {{- end}}
    </div>
    <div class="footer">
      <p>ЯКраш - приложение для мастеров красоты</p>
      <p>Это автоматическое письмо, не отвечайте на него</p>
    </div>
  </div>
</body>
</html>
`))

type emailView struct {
	MasterName  string
	Lead        string
	Service     string
	When        string
	Comment     string
	ClientName  string
	ClientPhone string
	FrontendURL string
}

// RenderEmail builds the HTML reminder email for one threshold.
func RenderEmail(c domain.Candidate, offset int, loc *time.Location, frontendURL string) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, emailView{
		MasterName:  c.MasterName,
		Lead:        LeadPhrase(offset),
		Service:     c.Service,
		When:        timezone.FormatLong(c.ScheduledAt, loc),
		Comment:     c.Comment,
		ClientName:  c.ClientName,
		ClientPhone: c.ClientPhone,
		FrontendURL: frontendURL,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
