package report

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RenderSource renders the lines of src covered by span with
// line-number gutters and caret underlining, the way
// bootstrap/report.displaySourceText does -- except it reads from an
// in-memory source string instead of reopening a file, since the core
// never touches the filesystem (spec's I/O happens in the calling
// layer).
func RenderSource(src string, span Span) string {
	var out strings.Builder

	var lines []string
	sc := bufio.NewScanner(strings.NewReader(src))
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}
	if len(lines) == 0 {
		return ""
	}

	minIndent := math.MaxInt
	for _, line := range lines {
		indent := 0
		for _, c := range line {
			if c == ' ' {
				indent++
			} else {
				break
			}
		}
		if indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent == math.MaxInt {
		minIndent = 0
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmt := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Fprintf(&out, lineNumFmt, i+span.StartLine+1)
		if minIndent <= len(line) {
			out.WriteString(line[minIndent:])
		} else {
			out.WriteString(line)
		}
		out.WriteByte('\n')

		out.WriteString(strings.Repeat(" ", maxLineNumLen))
		out.WriteString(" | ")

		var prefix int
		if i == 0 {
			prefix = span.StartCol - minIndent
		}
		var suffix int
		if i == len(lines)-1 {
			suffix = len(line) - span.EndCol
		}
		if prefix < 0 {
			prefix = 0
		}
		caretLen := len(line) - suffix - prefix - minIndent
		if caretLen < 1 {
			caretLen = 1
		}
		out.WriteString(strings.Repeat(" ", prefix))
		out.WriteString(strings.Repeat("^", caretLen))
		out.WriteByte('\n')
	}

	return out.String()
}
