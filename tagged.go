package promptsig

import (
	"regexp"
	"strings"
)

// taggedPreamble is the fixed system message opening every tagged-markup
// prompt. Models tuned for long-context chat respond better to
// role-segmented turns than to one monolithic block.
const taggedPreamble = "You are completing a structured task. " +
	"Use the field descriptions and examples that follow to produce the requested output fields."

// taggedFormatter renders an ordered sequence of role-tagged messages and
// parses XML-style <field>...</field> tags from the response. Tag patterns
// are precompiled per output field at construction.
type taggedFormatter struct {
	sig      *Signature
	patterns map[string]*regexp.Regexp
}

func newTaggedFormatter(sig *Signature) *taggedFormatter {
	f := &taggedFormatter{sig: sig, patterns: make(map[string]*regexp.Regexp)}
	for _, fd := range sig.OutputFields() {
		name := regexp.QuoteMeta(fd.Name())
		f.patterns[fd.Name()] = regexp.MustCompile(`(?s)<` + name + `>(.*?)</` + name + `>`)
	}
	return f
}

func (f *taggedFormatter) render(req renderRequest) (Prompt, error) {
	outputs := f.sig.OutputFields()
	inputs := f.sig.InputFields()
	messages := []ChatMessage{
		{Role: RoleSystem, Content: taggedPreamble},
		{Role: RoleUser, Content: "Provide answers for output fields " + strings.Join(fieldNames(outputs), ", ") +
			". Follow the XML output format, only show the output fields do not repeat the hints, input fields or examples."},
	}
	if hints := f.sig.HintFields(); len(hints) > 0 {
		lines := make([]string, 0, len(hints))
		for _, h := range hints {
			lines = append(lines, h.PromptDescription(ConventionTagged))
		}
		messages = append(messages, ChatMessage{Role: RoleUser, Content: "Hints:\n" + strings.Join(lines, "\n")})
	}
	var desc strings.Builder
	desc.WriteString("<input_fields>\n")
	desc.WriteString(strings.Join(fieldDescriptions(inputs), "\n"))
	desc.WriteString("\n</input_fields>\n<output_fields>\n")
	desc.WriteString(strings.Join(fieldDescriptions(outputs), "\n"))
	desc.WriteString("\n</output_fields>")
	messages = append(messages, ChatMessage{Role: RoleUser, Content: desc.String()})
	for _, ex := range req.examples {
		messages = append(messages, ChatMessage{Role: RoleUser, Content: f.exampleMessage(inputs, outputs, ex)})
	}
	for _, ex := range req.trained {
		messages = append(messages, ChatMessage{Role: RoleUser, Content: f.exampleMessage(inputs, outputs, ex)})
	}
	var in strings.Builder
	in.WriteString("<input>\n")
	in.WriteString(strings.Join(fieldValues(inputs, req.inputs), "\n"))
	in.WriteString("\n</input>")
	messages = append(messages, ChatMessage{Role: RoleUser, Content: in.String()})
	messages = append(messages, ChatMessage{
		Role:    RoleUser,
		Content: "Respond with the output in the following format:\n<output>\n[Your response here]\n</output>",
	})
	return MessagesPrompt{Messages: messages}, nil
}

func (f *taggedFormatter) exampleMessage(inputs, outputs []FieldDescriptor, ex Example) string {
	var b strings.Builder
	b.WriteString("<example>\n<input>\n")
	b.WriteString(strings.Join(fieldValues(inputs, ex.Inputs), "\n"))
	b.WriteString("\n</input>\n<output>\n")
	lines := make([]string, 0, len(outputs))
	for _, fd := range outputs {
		lines = append(lines, fd.PromptValue(exampleValue(ex.Output, fd.Name()), ConventionTagged))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n</output>\n</example>")
	return b.String()
}

// parse extracts the last <name>...</name> occurrence per declared output
// field, trimming surrounding whitespace. Fields with no matching tag are
// absent from the result; callers must treat a missing key as "the model
// did not answer this field", not as an error.
func (f *taggedFormatter) parse(raw string) (map[string]any, error) {
	parsed := make(map[string]any)
	for _, fd := range f.sig.OutputFields() {
		pattern, ok := f.patterns[fd.Name()]
		if !ok {
			continue
		}
		matches := pattern.FindAllStringSubmatch(raw, -1)
		if len(matches) == 0 {
			continue
		}
		parsed[fd.Name()] = strings.TrimSpace(matches[len(matches)-1][1])
	}
	return parsed, nil
}

func fieldDescriptions(fields []FieldDescriptor) []string {
	out := make([]string, 0, len(fields))
	for _, fd := range fields {
		out = append(out, fd.PromptDescription(ConventionTagged))
	}
	return out
}

func fieldValues(fields []FieldDescriptor, values map[string]any) []string {
	out := make([]string, 0, len(fields))
	for _, fd := range fields {
		out = append(out, fd.PromptValue(values[fd.Name()], ConventionTagged))
	}
	return out
}
