package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// KindTitle turns an error kind like "argument_resolution" into "Argument Resolution Error"
func KindTitle(kind string) string {
	if kind == "" {
		return "Error"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(kind, "_", " ")) + " Error"
}

// DescribeError renders err with a title naming its deployment error kind
func DescribeError(err error) string {
	return color.New(color.FgRed, color.Bold).Sprint(KindTitle(domain.ErrorKind(err))+": ") + err.Error()
}

// newTable creates a borderless table with a bold header
func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = true
	t.Style().Options.SeparateColumns = false
	t.Style().Box.PaddingRight = "  "
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(header)
	return t
}
