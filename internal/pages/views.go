package pages

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

var viewFuncs = template.FuncMap{
	"join": strings.Join,
	"when": func(ts api.Timestamp) string {
		if !ts.Set() {
			return "未知"
		}
		return ts.Display()
	},
	"status": func(active bool) string {
		if active {
			return "激活"
		}
		return "未激活"
	},
	"inc": func(i int) int { return i + 1 },
	"similarity": func(d api.SourceDocument) string {
		return fmt.Sprintf("%.2f", d.Similarity())
	},
	// historySimilarity is empty when the score is absent or zero.
	"historySimilarity": func(score *float64) string {
		if score == nil || *score == 0 {
			return ""
		}
		return fmt.Sprintf("%.2f", 1-*score)
	},
}

var views = template.Must(template.New("views").Funcs(viewFuncs).Parse(`
{{- define "analysis" -}}
{{- if or .Name .Email .Phone}}
== 基本信息 ==
姓名: {{or .Name "未提供"}}
邮箱: {{or .Email "未提供"}}
电话: {{or .Phone "未提供"}}
{{end -}}
{{- if .Skills}}
== 技能 ==
{{join .Skills " | "}}
{{end -}}
{{- if .Experience}}
== 工作经验 ==
{{- range .Experience}}
{{or .Position "职位未提供"}} at {{or .Company "公司未提供"}}
{{- with .Duration}}
  {{.}}{{end}}
{{- with .Description}}
  {{.}}{{end}}
{{end -}}
{{end -}}
{{- if .Education}}
== 教育背景 ==
{{- range .Education}}
{{or .Degree "学位未提供"}} in {{or .Field "专业未提供"}}
  {{or .Institution "院校未提供"}} ({{.Duration}})
{{end -}}
{{end -}}
{{end}}

{{- define "knowledge-list" -}}
{{- if not .}}您还没有创建任何知识库
{{else}}
{{- range .}}
[{{.ID}}] {{.Name}}
  {{or .Description "无描述"}}
  创建时间: {{when .CreatedAt}}  {{status .IsActive}}
{{end -}}
{{end -}}
{{end}}

{{- define "knowledge-base" -}}
{{.Name}}
描述: {{or .Description "无"}}
创建时间: {{when .CreatedAt}}
状态: {{status .IsActive}}
{{end}}

{{- define "query-result" -}}
== 回答 ==
{{.Answer}}

== 参考文档 ==
{{- if .SourceDocuments}}
{{- range $i, $doc := .SourceDocuments}}
参考文档 {{inc $i}}
{{$doc.Content}}
相似度: {{similarity $doc}}
{{end -}}
{{else}}
未找到相关参考文档
{{end -}}
{{end}}

{{- define "history" -}}
{{.Title}}
{{if not .Entries}}
该知识库暂无查询历史
{{else}}
{{- range .Entries}}
问题: {{.Question}}
回答: {{.Answer}}
时间: {{when .CreatedAt}}
{{- with historySimilarity .SimilarityScore}}  相似度: {{.}}{{end}}
{{end -}}
{{end -}}
{{end}}

{{- define "profile" -}}
用户ID: {{.ID}}
用户名: {{.Username}}
邮箱: {{.Email}}
注册时间: {{when .CreatedAt}}
最后更新: {{when .UpdatedAt}}
{{end}}
`))

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := views.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}
