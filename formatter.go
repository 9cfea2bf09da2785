package qagent

import (
	"fmt"
	"strings"
)

// NoIssuesMessage is the report rendered when validation finds nothing.
const NoIssuesMessage = "✅ **No issues found!** Your HTML and documentation are well-structured."

// FormatReport renders findings as a Markdown report grouped into
// critical issues, warnings and recommendations, in that order.
func FormatReport(findings []Finding) string {
	groups := GroupFindings(findings)
	if groups.Empty() {
		return NoIssuesMessage
	}

	var sb strings.Builder
	sb.WriteString("## 🔍 Quick Fix Suggestions\n\n")
	writeSection(&sb, "### 🚨 Critical Issues", groups.Errors)
	writeSection(&sb, "### ⚠️ Warnings", groups.Warnings)
	writeSection(&sb, "### ℹ️ Recommendations", groups.Infos)
	return sb.String()
}

func writeSection(sb *strings.Builder, heading string, findings []Finding) {
	if len(findings) == 0 {
		return
	}
	sb.WriteString(heading + "\n")
	for _, f := range findings {
		fmt.Fprintf(sb, "**%s**: %s\n", f.Category, f.Issue)
		fmt.Fprintf(sb, "💡 *Fix*: %s\n\n", f.Suggestion)
	}
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
