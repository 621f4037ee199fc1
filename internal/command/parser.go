package command

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-shellwords"
)

// mentionPrefix matches a Slack mention tag at the start of the text,
// e.g. "<@U024BE7LH>". Mentions elsewhere in the text are left alone.
var mentionPrefix = regexp.MustCompile(`^<@[^>]*>`)

// Parse turns raw Slack message text into an argv token list.
//
// A leading mention tag is stripped, ideographic spaces (U+3000) are
// normalized to ASCII spaces, and the remainder is split with POSIX
// shell word-splitting rules: quoting and escaping are honored, but
// nothing is expanded — no globs, no variables, and pipes/redirects
// are just ordinary tokens.
//
// Empty text yields a nil slice. An unmatched quote is a parse error.
func Parse(text string) ([]string, error) {
	text = mentionPrefix.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "　", " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	tokens, err := shellwords.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("splitting command text: %w", err)
	}
	return tokens, nil
}
