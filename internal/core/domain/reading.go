package domain

import (
	"strings"

	"golang.org/x/net/html"
)

const wordsPerMinute = 200

// Stats is the size of a text as words and estimated minutes to read.
type Stats struct {
	WordCount int `json:"wordCount"`
	Minutes   int `json:"readingTime"`
}

// ReadingStats counts the visible words of an HTML fragment and estimates
// the reading time at 200 words per minute, never less than one minute.
func ReadingStats(content string) Stats {
	words := countWords(content)
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return Stats{WordCount: words, Minutes: minutes}
}

// countWords sums the words of every text token. Tags and comments act as
// separators; script and style bodies are not counted.
func countWords(content string) int {
	z := html.NewTokenizer(strings.NewReader(content))
	words, hidden := 0, 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return words
		case html.StartTagToken:
			if name, _ := z.TagName(); isHiddenElement(name) {
				hidden++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isHiddenElement(name) && hidden > 0 {
				hidden--
			}
		case html.TextToken:
			if hidden == 0 {
				words += len(strings.Fields(string(z.Text())))
			}
		}
	}
}

func isHiddenElement(name []byte) bool {
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
