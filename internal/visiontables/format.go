package visiontables

import "strings"

// RenderMarkdown renders df as a GitHub-flavored Markdown table.
func RenderMarkdown(df *DataFrame) string {
	if len(df.Columns) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(df.Columns, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(df.Columns)) + "\n")
	for _, row := range df.Rows {
		padded := make([]string, len(df.Columns))
		copy(padded, row)
		sb.WriteString("| " + strings.Join(padded, " | ") + " |\n")
	}
	return sb.String()
}
