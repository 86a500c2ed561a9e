package export

import (
	"bytes"
	"html/template"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
	"github.com/espd/espd-web/backend/go-services/internal/espd"
)

var page = template.Must(template.New("espd").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>ESPD {{.Doc.ID}}</title></head>
<body>
<h1>European Single Procurement Document</h1>
{{with .Doc.Authority}}<p>Contracting authority: <strong>{{.Name}}</strong></p>{{end}}
{{with .Doc.ProcedureTitle}}<p>Procedure: {{.}}</p>{{end}}
{{with .Doc.ProcedureShortDesc}}<p>{{.}}</p>{{end}}
{{with .Doc.OJSNumber}}<p>OJEU reference: {{.}}</p>{{end}}
{{with .Doc.FileRefByCA}}<p>File reference: {{.}}</p>{{end}}
{{range .Sections}}
<h2>{{.Title}}</h2>
<ul>{{range .Rows}}
<li data-field="{{.Field}}">{{.Field}}: {{if .Exclusion}}{{if .Selected}}requested{{else}}not requested{{end}}{{else}}{{if .Selected}}selected{{else}}not selected{{end}}{{end}}</li>{{end}}
</ul>
{{end}}
</body>
</html>
`))

type row struct {
	Field     string
	Exclusion bool
	Selected  bool
}

type section struct {
	Title string
	Rows  []row
}

// RenderHTML renders the document as a standalone HTML summary. Only
// criteria present on the document are listed.
func RenderHTML(d *espd.Document) ([]byte, error) {
	data := struct {
		Doc      *espd.Document
		Sections []section
	}{Doc: d}
	for _, s := range []struct {
		title string
		set   []criteria.Criterion
	}{
		{"Exclusion grounds", criteria.Exclusion},
		{"Selection criteria", criteria.Selection},
		{"Other criteria", criteria.Other},
	} {
		sec := section{Title: s.title}
		for _, c := range s.set {
			if v := d.ReadCriterion(c.Field); v != nil {
				sec.Rows = append(sec.Rows, row{Field: c.Field, Exclusion: c.IsExclusion(), Selected: v.GetExists()})
			}
		}
		if len(sec.Rows) > 0 {
			data.Sections = append(data.Sections, sec)
		}
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
