package export

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

const timestampLayout = "2006-01-02 15:04:05"

var minutesTemplate = template.Must(template.New("minutes").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Meeting Minutes - {{.Record.MeetingInfo.Title}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            line-height: 1.6;
        }
        .header {
            background-color: #f4f4f4;
            padding: 20px;
            border-radius: 5px;
            margin-bottom: 20px;
        }
        .section {
            margin-bottom: 30px;
        }
        .action-item {
            background-color: #fff3cd;
            padding: 10px;
            margin: 5px 0;
            border-left: 4px solid #ffc107;
        }
        .decision {
            background-color: #d1ecf1;
            padding: 10px;
            margin: 5px 0;
            border-left: 4px solid #17a2b8;
        }
        h1, h2 {
            color: #333;
        }
        .timestamp {
            color: #666;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Meeting Minutes: {{.Record.MeetingInfo.Title}}</h1>
        <p><strong>Date:</strong> {{.Record.MeetingInfo.Date}}</p>
        <p><strong>Duration:</strong> {{.Record.MeetingInfo.Duration}}</p>
        <p><strong>Participants:</strong> {{join .Record.MeetingInfo.Participants ", "}}</p>
    </div>

    <div class="section">
        <h2>📋 Summary</h2>
        <p>{{.Record.Summary}}</p>
    </div>

    <div class="section">
        <h2>🎯 Key Decisions</h2>
        {{range .Record.KeyDecisions}}<div class="decision">• {{.}}</div>{{end}}
    </div>

    <div class="section">
        <h2>✅ Action Items</h2>
        {{range .Record.ActionItems}}<div class="action-item"><strong>{{.Assignee}}:</strong> {{.Task}} <em>(Due: {{.DueDate}})</em></div>{{end}}
    </div>

    <div class="section">
        <h2>🔄 Next Steps</h2>
        <ul>
            {{range .Record.NextSteps}}<li>{{.}}</li>{{end}}
        </ul>
    </div>

    <div class="section">
        <h2>📝 Full Transcript</h2>
        <div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px;">
            <pre style="white-space: pre-wrap;">{{.Record.FullTranscript}}</pre>
        </div>
    </div>

    <footer style="margin-top: 40px; text-align: center; color: #666;">
        <p class="timestamp">Generated on {{.GeneratedAt}}</p>
    </footer>
</body>
</html>
`))

// HTMLRenderer fills the minutes page. All record text is escaped.
type HTMLRenderer struct {
	now func() time.Time
}

// NewHTMLRenderer creates a renderer stamping pages with now()
func NewHTMLRenderer(now func() time.Time) HTMLRenderer {
	if now == nil {
		now = time.Now
	}
	return HTMLRenderer{now: now}
}

func (r HTMLRenderer) Render(record entities.MinutesRecord) ([]byte, error) {
	var buf bytes.Buffer
	err := minutesTemplate.Execute(&buf, struct {
		Record      entities.MinutesRecord
		GeneratedAt string
	}{
		Record:      record,
		GeneratedAt: r.now().Format(timestampLayout),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
