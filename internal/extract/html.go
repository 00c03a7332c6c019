package extract

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// htmlText strips script and style blocks (content included), then all
// remaining tags, and collapses whitespace runs to single spaces.
func htmlText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("html payload is not valid utf-8")
	}
	content := string(data)
	content = scriptTag.ReplaceAllString(content, " ")
	content = styleTag.ReplaceAllString(content, " ")
	content = anyTag.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = whitespaceRun.ReplaceAllString(content, " ")
	return strings.TrimSpace(content), nil
}
