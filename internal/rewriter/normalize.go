package rewriter

import "strings"

// StripCodeFences removes everything between paired ``` lines,
// including the fence lines themselves. Text outside fences keeps its
// line order. Running it on already-clean text is a no-op.
func StripCodeFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}

	var kept []string
	inFence := false
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "```") {
			inFence = !inFence
			continue
		}
		if !inFence {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// isLongFormField reports whether a field label expects structured
// paragraph markup rather than a bare line of text.
func isLongFormField(fieldName string) bool {
	switch fieldName {
	case FieldShortDescription, FieldDescription, FieldSummary:
		return true
	}
	return false
}

// WrapParagraphs re-wraps bare prose into <p> blocks: sentences are
// split on ". " and grouped three per paragraph, the trailing partial
// group included. Three sentences or fewer become a single paragraph.
// Text that already contains markup is returned untouched.
func WrapParagraphs(text string) string {
	if strings.Contains(text, "<") {
		return text
	}

	sentences := strings.Split(text, ". ")
	if len(sentences) <= 3 {
		return "<p>" + text + "</p>"
	}

	var blocks []string
	var current []string
	for i, sentence := range sentences {
		if !strings.HasSuffix(sentence, ".") {
			sentence += "."
		}
		current = append(current, sentence)
		if (i+1)%3 == 0 || i == len(sentences)-1 {
			blocks = append(blocks, "<p>"+strings.Join(current, " ")+"</p>")
			current = nil
		}
	}
	return strings.Join(blocks, "\n")
}

// Normalize post-processes a raw completion: strips fence artifacts,
// reattaches the price prefix, and re-wraps long-form prose into
// paragraphs when the model returned no markup.
func Normalize(text, fieldName, pricePrefix string) string {
	text = StripCodeFences(text)

	if pricePrefix != "" {
		text = pricePrefix + text
	}

	if isLongFormField(fieldName) {
		text = WrapParagraphs(text)
	}

	return text
}
