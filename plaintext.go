package promptsig

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// plainTextFormatter renders the worked-example cookbook format: field
// descriptions, ---separated examples, the caller's inputs, and a bare
// marker line per output field as the generation cue. Parsing splits the
// response on OutputMarker and matches "name: content" chunks.
type plainTextFormatter struct {
	sig    *Signature
	logger *zap.Logger
}

// plainFieldPattern matches one "name: content" chunk. The name may span
// lines up to the first colon; content runs to the end of its line.
var plainFieldPattern = regexp.MustCompile(`^([^:]+): (.*)`)

func (f *plainTextFormatter) render(req renderRequest) (Prompt, error) {
	var b strings.Builder
	b.WriteString("Follow the following format. Attributes that have values should not be changed or repeated. ")
	outputs := f.sig.OutputFields()
	if len(outputs) > 1 {
		b.WriteString("Provide answers for " + strings.Join(fieldNames(outputs), ", ") + "\n")
	}
	hints := f.sig.HintFields()
	if len(hints) > 0 {
		b.WriteString("\n")
		for _, h := range hints {
			b.WriteString(h.PromptDescription(ConventionPlainText) + "\n")
		}
	}
	b.WriteString("\n\n")
	inputs := f.sig.InputFields()
	for _, fd := range inputs {
		b.WriteString(fd.PromptDescription(ConventionPlainText) + "\n")
	}
	for _, fd := range outputs {
		b.WriteString(fd.PromptDescription(ConventionPlainText) + "\n")
	}
	for _, ex := range req.examples {
		f.writeExample(&b, inputs, outputs, ex)
	}
	for _, ex := range req.trained {
		f.writeExample(&b, inputs, outputs, ex)
	}
	b.WriteString("\n---\n\n")
	for _, fd := range inputs {
		b.WriteString(fd.PromptValue(req.inputs[fd.Name()], ConventionPlainText) + "\n")
	}
	for _, fd := range outputs {
		b.WriteString(fd.Prompt(ConventionPlainText) + "\n")
	}
	return TextPrompt{Text: b.String()}, nil
}

func (f *plainTextFormatter) writeExample(b *strings.Builder, inputs, outputs []FieldDescriptor, ex Example) {
	b.WriteString("\n---\n\n")
	for _, fd := range inputs {
		b.WriteString(fd.PromptValue(ex.Inputs[fd.Name()], ConventionPlainText) + "\n")
	}
	for _, fd := range outputs {
		b.WriteString(fd.PromptValue(exampleValue(ex.Output, fd.Name()), ConventionPlainText) + "\n")
	}
}

// parse splits raw output on OutputMarker and resolves each "name: content"
// chunk to a declared output field. Unresolved names are logged and
// dropped. When exactly one output field is declared and it came back
// absent or empty, the entire last chunk is taken as its value; models that
// ignore the marker convention still produce a usable answer that way.
func (f *plainTextFormatter) parse(raw string) (map[string]any, error) {
	chunks := strings.Split(raw, OutputMarker)
	outputs := f.sig.OutputFields()
	parsed := make(map[string]any)
	for _, chunk := range chunks {
		m := plainFieldPattern.FindStringSubmatch(chunk)
		if m == nil {
			f.logger.Debug("chunk matched no field", zap.String("chunk", chunk))
			continue
		}
		name, content := m[1], m[2]
		fd := resolveOutputField(outputs, name)
		if fd == nil {
			f.logger.Error("parsed field not declared in outputs", zap.String("field", name))
			continue
		}
		parsed[fd.Name()] = content
	}
	if len(outputs) == 1 {
		sole := outputs[0].Name()
		if v, ok := parsed[sole]; !ok || v == "" {
			parsed[sole] = chunks[len(chunks)-1]
		}
	}
	return parsed, nil
}
