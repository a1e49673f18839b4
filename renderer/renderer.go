// Package renderer renders accounts and their movements to markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var embedded embed.FS

// templates holds the markdown templates, by file name.
var templates, _ = fs.Sub(embedded, "templates")

// StatementRenderOptions holds configuration for rendering a statement.
type StatementRenderOptions struct {
	SkipDetails bool // Do not render categories and keywords.
}

// RenderLedger renders the overview of all accounts to a markdown string.
func RenderLedger(l *Ledger) string {
	partials := map[string]string{
		"ledger_title":    "ledger_title.md",
		"ledger_accounts": "ledger_accounts.md",
	}
	return renderTemplate("ledger", "ledger.md", partials, l)
}

// RenderStatement renders the movements of an account to a markdown string.
func RenderStatement(s *Statement, opts StatementRenderOptions) string {
	partials := map[string]string{
		"statement_title":   "statement_title.md",
		"statement_summary": "statement_summary.md",
	}
	if opts.SkipDetails {
		partials["statement_lines"] = "statement_lines_short.md"
	} else {
		partials["statement_lines"] = "statement_lines.md"
	}
	return renderTemplate("statement", "statement.md", partials, s)
}

// funcs are the helpers available to templates.
var funcs = template.FuncMap{
	"cell": cell,
}

// cell escapes s to be written in a markdown table cell.
func cell(s any) string {
	r := strings.NewReplacer("|", `\|`, "\n", " ")
	return r.Replace(fmt.Sprint(s))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
