package routes

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/theossalmeida/front-great-people/httpx"
	"github.com/theossalmeida/front-great-people/model"
	"github.com/theossalmeida/front-great-people/routes/middlewares"
	"github.com/theossalmeida/front-great-people/views"
)

//go:embed templates
var templatesFS embed.FS

var funcs = template.FuncMap{
	"media": model.FormatAverage,
	"score": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
}

var (
	recordsTmpl = parsePage("templates/records.html")
	uploadTmpl  = parsePage("templates/upload.html")
)

func parsePage(page string) *template.Template {
	return template.Must(template.New("layout").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", page))
}

type recordsPage struct {
	View      *views.RecordView
	PageSizes []int
}

type uploadPage struct {
	View *views.UploadView
}

func renderPage(w http.ResponseWriter, r *http.Request, tmpl *template.Template, code string, data any) {
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", data)
	if err != nil {
		httpx.LogInternalError(w, r, code, err)
		return
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	buf.WriteTo(w)
}

func session(r *http.Request) *middlewares.Session {
	return middlewares.SessionFrom(r.Context())
}
