package prg

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Fixed lines of the text format.
const (
	TextHeaderCaption = "Wait L | Wait R"
	TextStepCaption   = "Quote | 1 2 3 4 5 6 7 8 | L R"
	TextStepRule      = "-----------------------------"
)

// Line numbers (0-based) of the text format.
const (
	textHeaderLine    = 1
	textFirstStepLine = 5
)

// EncodeText renders the program in text form.
//
// The layout is:
//
//	Wait L | Wait R
//	  12   |  34
//	(blank)
//	Quote | 1 2 3 4 5 6 7 8 | L R
//	-----------------------------
//	  120 | 1 2 3 4 5 6 7 8 | 9 10
//	...
//
// Every line, including the last step, ends with a newline.
func (p *Program) EncodeText() string {
	var sb strings.Builder
	sb.Grow(128 + len(p.steps)*40)

	sb.WriteString(TextHeaderCaption)
	sb.WriteByte('\n')
	sb.WriteString(p.header.ToText())
	sb.WriteString("\n\n")
	sb.WriteString(TextStepCaption)
	sb.WriteByte('\n')
	sb.WriteString(TextStepRule)
	sb.WriteByte('\n')

	for _, step := range p.steps {
		sb.WriteString(step.ToText())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// decodeText decodes the text form of a program.
//
// Surrounding white space of the whole text is trimmed before splitting into lines, a leading
// UTF-8 byte order mark is dropped. Line 1 is the header, lines 5 and later are steps.
// Caption and separator lines are not checked.
func decodeText(data []byte) (*Program, error) {
	text, err := unicode.UTF8BOM.NewDecoder().String(string(data))
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= textHeaderLine {
		return nil, newStructuralError("header line", textHeaderLine)
	}

	header, err := ParseHeader(lines[textHeaderLine])
	if err != nil {
		return nil, withLine(err, textHeaderLine)
	}

	if len(lines) < textFirstStepLine {
		return nil, newStructuralError("step caption lines", len(lines))
	}

	steps, err := ParseSteps(lines[textFirstStepLine:], textFirstStepLine)
	if err != nil {
		return nil, err
	}

	return &Program{header: header, steps: steps, format: FormatText}, nil
}
