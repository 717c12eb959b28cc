package transcript

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// Speaker returns the header label for role.
func Speaker(m Message) string {
	if m.Role == api.RoleUser {
		return "您"
	}
	return "AI助手"
}

// Clock formats a message time as H:MM.
func Clock(m Message) string {
	return fmt.Sprintf("%d:%02d", m.Timestamp.Hour(), m.Timestamp.Minute())
}

// RenderText writes the transcript for a terminal.
func (t *Transcript) RenderText(w io.Writer) error {
	for _, m := range t.Messages() {
		if _, err := fmt.Fprintf(w, "%s - %s\n%s\n\n", Speaker(m), Clock(m), m.Content); err != nil {
			return err
		}
	}
	return nil
}

type htmlMessage struct {
	Role    string
	Header  string
	Content template.HTML
}

// RenderHTML writes the transcript as a standalone HTML page. Message
// bodies are rendered as Markdown; raw HTML inside them is dropped and
// replaced with a "raw HTML omitted" comment.
func (t *Transcript) RenderHTML(w io.Writer, title string) error {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
	)

	msgs := t.Messages()
	items := make([]htmlMessage, 0, len(msgs))
	for _, m := range msgs {
		var buf bytes.Buffer
		if err := md.Convert([]byte(m.Content), &buf); err != nil {
			return fmt.Errorf("rendering message %s: %w", m.ID, err)
		}
		items = append(items, htmlMessage{
			Role:    string(m.Role),
			Header:  Speaker(m) + " - " + Clock(m),
			Content: template.HTML(buf.String()),
		})
	}

	return pageTemplate.Execute(w, struct {
		Title    string
		Messages []htmlMessage
	}{Title: title, Messages: items})
}

var pageTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "PingFang SC", "Microsoft YaHei", sans-serif; max-width: 820px; margin: 2rem auto; color: #222; }
.message { border-radius: 8px; padding: 0.75rem 1rem; margin: 0.75rem 0; }
.message.user { background: #e8f0fe; margin-left: 4rem; }
.message.assistant { background: #f4f4f4; margin-right: 4rem; }
.message-header { font-size: 0.8rem; color: #666; margin-bottom: 0.25rem; }
pre { overflow-x: auto; padding: 0.5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="chat-history">
{{- range .Messages}}
<div class="message {{.Role}}">
<div class="message-header">{{.Header}}</div>
<div class="message-content">{{.Content}}</div>
</div>
{{- end}}
</div>
</body>
</html>
`))
