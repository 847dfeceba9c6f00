package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/renamr/internal/planner"
)

var (
	// Output sinks; the root command points them at its writers
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// Color functions - fatih/color disables them when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
	okColor      = color.New(color.FgGreen)
)

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Fprintln(stdout)
	_, _ = headerColor.Fprintf(stdout, "▸ %s\n", title)
	fmt.Fprintln(stdout)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(stdout, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(stdout, "⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	fmt.Fprintln(stdout, msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(stdout, "  %s: ", label)
	_, _ = valueColor.Fprintln(stdout, value)
}

// PrintList prints a list of items with bullet points
func PrintList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Fprintf(stdout, "%s• %s\n", indentStr, item)
	}
}

// PrintTable prints a simple column table
func PrintTable(headers []string, rows [][]string) {
	printTable(headers, rows, func(int) *color.Color { return valueColor })
}

// printTable prints a column table, coloring each row with rowColor(i)
func printTable(headers []string, rows [][]string, rowColor func(int) *color.Color) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	// Column widths count runes so accented file names line up
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len([]rune(header))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len([]rune(cell)) > colWidths[i] {
				colWidths[i] = len([]rune(cell))
			}
		}
	}

	fmt.Fprint(stdout, "  ")
	for i, header := range headers {
		if i > 0 {
			fmt.Fprint(stdout, "  ")
		}
		_, _ = headerColor.Fprint(stdout, pad(header, colWidths[i]))
	}
	fmt.Fprintln(stdout)

	fmt.Fprint(stdout, "  ")
	for i, width := range colWidths {
		if i > 0 {
			fmt.Fprint(stdout, "  ")
		}
		fmt.Fprint(stdout, strings.Repeat("-", width))
	}
	fmt.Fprintln(stdout)

	for r, row := range rows {
		clr := rowColor(r)
		fmt.Fprint(stdout, "  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				fmt.Fprint(stdout, "  ")
			}
			_, _ = clr.Fprint(stdout, pad(cell, colWidths[i]))
		}
		fmt.Fprintln(stdout)
	}
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Fprintf(stdout, "  %s\n", msg)
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// statusColor maps a preview status to its row color.
func statusColor(s planner.Status) *color.Color {
	switch s {
	case planner.StatusOK:
		return okColor
	case planner.StatusError:
		return errorColor
	default:
		return dimColor
	}
}

// PrintPreview prints the preview table followed by its summary.
func PrintPreview(entries []planner.PreviewEntry, sum planner.Summary) {
	if len(entries) == 0 {
		PrintEmptyState("No matching files")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := string(e.Status)
		if e.Message != "" {
			status += ": " + e.Message
		}
		rows = append(rows, []string{e.OriginalName, e.ProposedName, status})
	}
	printTable([]string{"ORIGINAL", "PROPOSED", "STATUS"}, rows, func(i int) *color.Color {
		return statusColor(entries[i].Status)
	})

	fmt.Fprintln(stdout)
	PrintInfo(fmt.Sprintf("%s: %d to rename, %d unchanged, %d failed",
		PrintCount(sum.Total, "file", "files"), sum.OK, sum.Unchanged, sum.Errors))
	for _, dup := range sum.Duplicates {
		PrintWarning(fmt.Sprintf("More than one file would be renamed to %s", dup))
	}
}
