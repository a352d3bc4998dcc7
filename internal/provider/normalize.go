package provider

import "strings"

// edgeCutset is removed from both ends of generated text
const edgeCutset = " \t\r\n`"

// Normalize strips the outer run of whitespace and backticks from generated
// text. Interior lines, including blank ones, are left as they are.
func Normalize(text string) string {
	return strings.Trim(text, edgeCutset)
}
