package server

import "html/template"

// pageView is the template-friendly projection of a form submission
type pageView struct {
	Text        string
	Error       string
	Submitted   bool
	Obligations []string
	Rights      []string
	NoOb        string
	NoRt        string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Legal Contract Parser</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
textarea { width: 100%; min-height: 10rem; }
.notice { background: #fff4d6; padding: .5rem; }
.error { background: #fde2e2; padding: .5rem; }
</style>
</head>
<body>
<h1>Legal Contract Parser</h1>
<p>Extract obligations and rights from legal documents.</p>
<form method="post" action="/extract">
<label for="text">Enter legal text:</label>
<textarea id="text" name="text">{{.Text}}</textarea>
<button type="submit">Extract Obligations &amp; Rights</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Submitted}}
<h2>Extracted Results</h2>
<h3>Obligations</h3>
{{if .Obligations}}<ul>{{range .Obligations}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="notice">{{.NoOb}}</p>{{end}}
<h3>Rights</h3>
{{if .Rights}}<ul>{{range .Rights}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="notice">{{.NoRt}}</p>{{end}}
{{end}}
</body>
</html>
`))
