package utils

import (
	"regexp"
	"strings"
)

var (
	markdownReplacer = strings.NewReplacer(
		`\`, `\\`,
		"`", "ˋ",
		`_`, `\_`,
		`*`, `\*`,
		"~~", `\~\~`,
		"||", `\|\|`,
	)

	maskedLinkRegex = regexp.MustCompile(`\[.+]\(.+\)`)
)

// EscapeMarkdown makes text from outside of Discord, like a server MOTD, render as plain text
func EscapeMarkdown(s string) string {
	return maskedLinkRegex.ReplaceAllString(markdownReplacer.Replace(s), `\$0`)
}

// EscapeCodeBlock replaces backticks with a look-alike so s can't break out of a code block
func EscapeCodeBlock(s string) string {
	return strings.ReplaceAll(s, "`", "ˋ")
}
