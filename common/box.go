package common

import (
	"strings"
	"unicode/utf8"
)

const (
	boxWidth    = 80
	boxMaxWords = 500
	boxEmpty    = "No output"
)

// BoxText frames text in a box-drawing border for console and transcript
// output. Text is capped at 500 words, lines are wrapped at 80 columns,
// and title and emoji, when given, go in a header row.
func BoxText(text, title, emoji string) string {
	if text == "" {
		text = boxEmpty
	}

	if words := strings.Fields(text); len(words) > boxMaxWords {
		text = strings.Join(append(words[:boxMaxWords], "..."), " ")
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) > boxWidth {
			lines = append(lines, wrap(line, boxWidth)...)
		} else {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		lines = []string{boxEmpty}
	}

	header := ""
	switch {
	case title != "" && emoji != "":
		header = " " + emoji + " " + title + " "
	case title != "":
		header = " " + title + " "
	case emoji != "":
		header = " " + emoji + " "
	}

	width := 0
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	width = max(width, utf8.RuneCountInString(header)-2)

	var b strings.Builder
	rule := strings.Repeat("═", width+2)
	b.WriteString("╔" + rule + "╗\n")
	if header != "" {
		b.WriteString("║" + header + pad(header, width+2) + "║\n")
		b.WriteString("╠" + rule + "╣\n")
	}
	for _, line := range lines {
		b.WriteString("║ " + line + pad(line, width) + " ║\n")
	}
	b.WriteString("╚" + rule + "╝")
	return b.String()
}

func pad(s string, width int) string {
	return strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s)))
}

// wrap greedily fills lines of at most width runes, splitting words that
// are longer than a whole line.
func wrap(line string, width int) []string {
	var out []string
	var cur []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(cur)+1+len(w) <= width:
			cur = append(append(cur, ' '), w...)
		default:
			out = append(out, string(cur))
			cur = w
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}
