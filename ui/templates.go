package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"burnoutlens/domain/filters"
	"burnoutlens/internal/comparison"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

//go:embed templates/*.html
var templateFiles embed.FS

var funcMap = template.FuncMap{
	"selected": func(sel filters.Selection, key, value string) bool {
		for _, v := range sel.Values(key) {
			if v == value {
				return true
			}
		}
		return false
	},
	"noConstraint": filters.IsNoConstraint,
	"pct":          func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"num":          func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pvalue":       comparison.FormatPValue,
	"markdown":     renderMarkdown,
}

// renderMarkdown converts the finding narrative to HTML. The text is produced by
// the report package from numbers only, so it is trusted.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	return template.HTML(markdown.ToHTML([]byte(md), nil, nil))
}

func parseTemplates() (*template.Template, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(sub, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// renderTemplate executes a template into a buffer first so a failure never
// leaves a half-written page
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error().Err(err).Str("template", templateName).Msg("template rendering failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "INTERNAL_ERROR", "message": "template rendering failed"}})
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
