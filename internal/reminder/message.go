package reminder

import (
	"bytes"
	"html/template"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// Message is one rendered reminder email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

var body = template.Must(template.New("reminder").Parse(`<h2>Maintenance Task Reminder</h2>
<p>Hello {{.AssigneeName}},</p>
<p>This is a reminder that the following task is due <strong>tomorrow</strong>:</p>
<ul>
  <li><strong>Title:</strong> {{.Title}}</li>
  <li><strong>Location:</strong> {{.Location}}</li>
  <li><strong>Priority:</strong> {{.Priority}}</li>
  <li><strong>Due Date:</strong> {{.DueDate}}</li>
</ul>
{{with .Description}}<p>{{.}}</p>
{{end}}<p>Please log in to the maintenance app to view details.</p>
<hr>
<p><small>La Maison Benoit Labre Maintenance System</small></p>
`))

// NewMessage renders the reminder for d.  Task text is HTML-escaped.
func NewMessage(from string, d model.DueReminder) (Message, error) {
	var buf bytes.Buffer
	if err := body.Execute(&buf, d); err != nil {
		return Message{}, err
	}
	return Message{
		From:    from,
		To:      d.AssigneeEmail,
		Subject: "Reminder: Task due tomorrow - " + d.Title,
		HTML:    buf.String(),
	}, nil
}
