package youtube

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultKeywordLimit caps the number of keyword tokens shown for a channel
const DefaultKeywordLimit = 10

var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// Email returns the first email address embedded in the channel description,
// or "" when there is none.
func (c YouTubeChannel) Email() string {
	return emailPattern.FindString(c.Description)
}

// KeywordTokens returns the double-quoted tokens from the branding keywords
// string, in order, at most limit of them. A limit <= 0 means DefaultKeywordLimit.
//
// The keywords string mixes bare words and quoted phrases, e.g.
// `music "live sessions" "behind the scenes"`; only the quoted phrases count.
func (c YouTubeChannel) KeywordTokens(limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}
	parts := strings.Split(c.Keywords, `"`)
	tokens := make([]string, 0, limit)
	for i := 1; i < len(parts) && len(tokens) < limit; i += 2 {
		// an unterminated trailing quote has no closing segment
		if i == len(parts)-1 {
			break
		}
		tokens = append(tokens, parts[i])
	}
	return tokens
}

// ChannelInitial returns the upper-cased first letter of a channel name for
// avatar placeholders, "?" when the name is empty.
func ChannelInitial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}
