package promptsig

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// jsonFormatter renders the field schema, examples, and input values as
// 2-space-indented JSON blocks inside a natural-language frame, and parses
// the response as a single JSON object.
type jsonFormatter struct {
	sig *Signature
}

func (f *jsonFormatter) render(req renderRequest) (Prompt, error) {
	var b strings.Builder
	b.WriteString("Follow the following format. Answer with a JSON object. Attributes that have values should not be changed or repeated.")
	outputs := f.sig.OutputFields()
	if len(outputs) > 1 {
		b.WriteString(" Provide answers for " + strings.Join(fieldNames(outputs), ", ") + ".\n")
	}
	hints := f.sig.HintFields()
	if len(hints) > 0 {
		b.WriteString("\n")
		for _, h := range hints {
			b.WriteString(h.PromptDescription(ConventionJSON) + "\n")
		}
	}
	inputs := f.sig.InputFields()
	b.WriteString("\nInput Fields:\n")
	if err := writeJSONBlock(&b, describeFields(inputs)); err != nil {
		return nil, err
	}
	b.WriteString("\nOutput Fields:\n")
	if err := writeJSONBlock(&b, describeFields(outputs)); err != nil {
		return nil, err
	}
	if len(req.examples) > 0 {
		b.WriteString("\nExamples:\n")
		for _, ex := range req.examples {
			if err := writeJSONBlock(&b, f.exampleObject(inputs, outputs, ex)); err != nil {
				return nil, err
			}
		}
	}
	if len(req.trained) > 0 {
		b.WriteString("\nTrained Examples:\n")
		for _, ex := range req.trained {
			if err := writeJSONBlock(&b, f.exampleObject(inputs, outputs, ex)); err != nil {
				return nil, err
			}
		}
	}
	b.WriteString("\nInput:\n")
	inputObject := make(map[string]any, len(inputs))
	for _, fd := range inputs {
		maps.Copy(inputObject, fd.PromptValueJSON(req.inputs[fd.Name()], ConventionJSON))
	}
	if err := writeJSONBlock(&b, inputObject); err != nil {
		return nil, err
	}
	b.WriteString("\nOutput:\n")
	outputObject := make(map[string]any, len(outputs))
	for _, fd := range outputs {
		maps.Copy(outputObject, fd.PromptJSON(ConventionJSON))
	}
	if err := writeJSONBlock(&b, outputObject); err != nil {
		return nil, err
	}
	return TextPrompt{Text: b.String()}, nil
}

// parse decodes raw as a JSON object; a decode failure is fatal and
// propagated wrapped in ErrJSONDecode. Every declared output field is
// present in the result: transformed when its display name is a key in the
// decoded object, explicit nil otherwise.
func (f *jsonFormatter) parse(raw string) (map[string]any, error) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSONDecode, err)
	}
	outputs := f.sig.OutputFields()
	parsed := make(map[string]any, len(outputs))
	for _, fd := range outputs {
		if value, ok := decoded[fd.Name()]; ok {
			parsed[fd.Name()] = fd.TransformValue(value)
		} else {
			parsed[fd.Name()] = nil
		}
	}
	return parsed, nil
}

func (f *jsonFormatter) exampleObject(inputs, outputs []FieldDescriptor, ex Example) map[string]any {
	in := make(map[string]any, len(inputs))
	for _, fd := range inputs {
		maps.Copy(in, fd.PromptValueJSON(ex.Inputs[fd.Name()], ConventionJSON))
	}
	out := make(map[string]any, len(outputs))
	for _, fd := range outputs {
		maps.Copy(out, fd.PromptValueJSON(exampleValue(ex.Output, fd.Name()), ConventionJSON))
	}
	return map[string]any{"input": in, "output": out}
}

func describeFields(fields []FieldDescriptor) map[string]any {
	out := make(map[string]any, len(fields))
	for _, fd := range fields {
		out[fd.Name()] = fd.Desc()
	}
	return out
}

func writeJSONBlock(b *strings.Builder, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("promptsig: marshal prompt block: %w", err)
	}
	b.Write(data)
	b.WriteString("\n")
	return nil
}
