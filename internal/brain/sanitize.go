package brain

import (
	"regexp"
	"strings"
)

// specialTokenPattern matches Llama chat-template tokens such as
// <|eot_id|> or <|python_tag|> that some hosted models leak into content.
var specialTokenPattern = regexp.MustCompile(`<\|[a-z_]+\|>`)

// SanitizeReply removes leaked model control tokens from a reply before it
// is stored and sent to a teacher. Returns the cleaned reply and how many
// tokens were stripped.
func SanitizeReply(content string) (string, int) {
	matches := specialTokenPattern.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}
	return strings.TrimSpace(specialTokenPattern.ReplaceAllString(content, "")), len(matches)
}
