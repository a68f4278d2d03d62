package views

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"monchai-insurance/models"
	"monchai-insurance/utils"
)

const AppTitle = "Monchai Insurance"

//go:embed templates/*.html
var files embed.FS

// Templates parses every page with the display helpers bound to loc.
func Templates(loc *time.Location) *template.Template {
	return template.Must(template.New("").Funcs(Funcs(loc)).ParseFS(files, "templates/*.html"))
}

func Funcs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"appTitle":    func() string { return AppTitle },
		"thaiDate":    func(value string) string { return utils.FormatThaiDate(value, loc) },
		"statusLabel": func(s models.Status) string { return s.ThaiLabel() },
		"daysLabel":   DaysLabel,
		"daysClass":   DaysClass,
	}
}

// DaysLabel renders a days-until value for the due table.
func DaysLabel(days *int) string {
	switch {
	case days == nil:
		return "-"
	case *days < 0:
		return fmt.Sprintf("เลยกำหนด %d วัน", -*days)
	case *days == 0:
		return "วันนี้"
	default:
		return fmt.Sprintf("%d", *days)
	}
}

// DaysClass picks the urgency style of a days-until value.
func DaysClass(days *int) string {
	switch {
	case days == nil:
		return ""
	case *days < 0:
		return "overdue"
	case *days <= 7:
		return "urgent"
	default:
		return ""
	}
}
