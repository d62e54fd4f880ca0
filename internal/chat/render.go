package chat

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

var (
	urlPattern      = regexp.MustCompile(`(https?://[^\s<]+)`)
	pageLinkPattern = regexp.MustCompile(`(/[\w-]+\.html)`)
	htmlEscaper     = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// RenderHTML turns a reply into an HTML fragment: markup is escaped, line
// breaks become <br>, absolute URLs open in a new tab and /page.html paths
// become site links.
func RenderHTML(text string) string {
	out := htmlEscaper.Replace(text)
	out = strings.ReplaceAll(out, "\n", "<br>")
	out = urlPattern.ReplaceAllString(out, `<a href="$1" target="_blank" rel="noopener">$1</a>`)
	out = pageLinkPattern.ReplaceAllString(out, `<a href="$1">$1</a>`)
	return out
}

// TypingDelay returns a pause in [lo, hi) before a reply is shown. rnd
// yields values in [0, 1); nil uses math/rand.
func TypingDelay(lo, hi time.Duration, rnd func() float64) time.Duration {
	if hi <= lo {
		return lo
	}
	if rnd == nil {
		rnd = rand.Float64
	}
	return lo + time.Duration(rnd()*float64(hi-lo))
}
