package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/li812/face-bank/internal/logger"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: face verification failed
	Error string `json:"error"`

	// Similarity of a rejected face, when one was compared
	Similarity *float64 `json:"similarity,omitempty"`
}

// MessageResponse is the body of requests that only report success
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// wantsHTML reports whether the client asked for a rendered page instead of JSON.
func wantsHTML(r *http.Request) bool {
	switch r.URL.Query().Get("format") {
	case "html":
		return true
	case "json":
		return false
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}
	first, _, _ := strings.Cut(accept, ",")
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(first))
	return err == nil && mediaType == "text/html"
}

// respond writes payload as JSON, or as a minimal HTML page when the client prefers it.
func respond(w http.ResponseWriter, r *http.Request, status int, title string, payload any) {
	if wantsHTML(r) {
		renderHTML(w, status, title, payload)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Fields}}<dl>
{{range .Fields}}<dt>{{.Name}}</dt><dd>{{.Value}}</dd>
{{end}}</dl>{{end}}
{{range .Tables}}<h2>{{.Name}}</h2>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}
</body>
</html>
`))

type pageField struct {
	Name  string
	Value string
}

type pageTable struct {
	Name    string
	Columns []string
	Rows    [][]string
}

type page struct {
	Title  string
	Fields []pageField
	Tables []pageTable
}

func renderHTML(w http.ResponseWriter, status int, title string, payload any) {
	p := page{Title: title}

	var doc map[string]any
	if data, err := json.Marshal(payload); err == nil {
		_ = json.Unmarshal(data, &doc)
	}

	for _, key := range sortedKeys(doc) {
		if rows, ok := tableRows(doc[key]); ok {
			p.Tables = append(p.Tables, buildTable(key, rows))
			continue
		}
		p.Fields = append(p.Fields, pageField{Name: key, Value: formatValue(doc[key])})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, p); err != nil {
		logger.Log.Errorw("failed to render page", "err", err)
	}
}

func tableRows(v any) ([]map[string]any, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	rows := make([]map[string]any, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		rows = append(rows, m)
	}
	return rows, true
}

func buildTable(name string, rows []map[string]any) pageTable {
	t := pageTable{Name: name}
	seen := map[string]bool{}
	for _, row := range rows {
		for _, k := range sortedKeys(row) {
			if !seen[k] {
				seen[k] = true
				t.Columns = append(t.Columns, k)
			}
		}
	}
	for _, row := range rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = formatValue(row[col])
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%.4g", x)
	default:
		data, _ := json.Marshal(x)
		return string(data)
	}
}
