// Package web holds the server-rendered page templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page template with the shared helpers
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

// FuncMap returns the helpers available to templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"oneDP": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"statusClass": func(s models.OrderStatus) string {
			switch s {
			case models.OrderStatusDelivered:
				return "success"
			case models.OrderStatusInTransit:
				return "info"
			case models.OrderStatusDelayed:
				return "danger"
			default:
				return "secondary"
			}
		},
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
	}
}
