package report

// Span represents a range of source text. The starting position is the
// first character of the span; EndCol is one past the last character
// (exclusive). Lines and columns are 0-indexed.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// SpanOver returns the span that spans over and between the two given
// spans.
func SpanOver(start, end Span) Span {
	return Span{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}
