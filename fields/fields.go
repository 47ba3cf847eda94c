package fields

import (
	"fmt"

	"github.com/skosovsky/promptsig"
)

// ValidatorFunc reports whether value is acceptable given the full input
// context.
type ValidatorFunc func(ctx map[string]any, value any) bool

// TransformFunc converts a raw value into its canonical form.
type TransformFunc func(value any) any

// answerPlaceholder fills the JSON Output block where the model must answer.
const answerPlaceholder = "..."

// base holds the descriptor state shared by all field roles.
type base struct {
	name      string
	desc      string
	optional  bool
	validate  ValidatorFunc
	transform TransformFunc
}

// Option configures a field at construction.
type Option func(*base)

// Optional marks the field as tolerating an absent input value.
func Optional() Option {
	return func(b *base) { b.optional = true }
}

// WithValidator sets the value validator. The default accepts everything.
func WithValidator(fn ValidatorFunc) Option {
	return func(b *base) { b.validate = fn }
}

// WithTransform sets the value transform. The default is identity.
func WithTransform(fn TransformFunc) Option {
	return func(b *base) { b.transform = fn }
}

func newBase(name, desc string, opts ...Option) base {
	b := base{name: name, desc: desc}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Name returns the field's display name.
func (b base) Name() string { return b.name }

// Desc returns the field's description.
func (b base) Desc() string { return b.desc }

// IsOptional reports whether input validation tolerates an absent value.
func (b base) IsOptional() bool { return b.optional }

// ValidateValue runs the configured validator, accepting by default.
func (b base) ValidateValue(ctx map[string]any, value any) bool {
	if b.validate == nil {
		return true
	}
	return b.validate(ctx, value)
}

// TransformValue runs the configured transform, identity by default.
func (b base) TransformValue(value any) any {
	if b.transform == nil {
		return value
	}
	return b.transform(value)
}

// PromptValueJSON renders the value as a one-key JSON fragment.
func (b base) PromptValueJSON(value any, _ promptsig.Convention) map[string]any {
	return map[string]any{b.name: value}
}

// PromptJSON renders the field's JSON answer placeholder.
func (b base) PromptJSON(_ promptsig.Convention) map[string]any {
	return map[string]any{b.name: answerPlaceholder}
}

// display renders a value for inclusion in a prompt line.
func display(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Input is a caller-supplied field.
type Input struct {
	base
}

// NewInput returns an input field descriptor.
func NewInput(name, desc string, opts ...Option) *Input {
	return &Input{base: newBase(name, desc, opts...)}
}

// PromptDescription renders the "name: description" line.
func (f *Input) PromptDescription(_ promptsig.Convention) string {
	return f.name + ": " + f.desc
}

// PromptValue renders a concrete value: "name: value" for the text
// conventions, "<name>value</name>" for tagged-markup.
func (f *Input) PromptValue(value any, conv promptsig.Convention) string {
	if conv == promptsig.ConventionTagged {
		return "<" + f.name + ">" + display(value) + "</" + f.name + ">"
	}
	return f.name + ": " + display(value)
}

// Prompt renders the bare field marker line.
func (f *Input) Prompt(_ promptsig.Convention) string {
	return f.name + ":"
}

// Output is a model-supplied field. In the plain-text convention its lines
// carry promptsig.OutputMarker so the parser can split the response.
type Output struct {
	base
}

// NewOutput returns an output field descriptor.
func NewOutput(name, desc string, opts ...Option) *Output {
	return &Output{base: newBase(name, desc, opts...)}
}

// PromptDescription renders the "name: description" line, marker-prefixed
// for the plain-text convention.
func (f *Output) PromptDescription(conv promptsig.Convention) string {
	if conv == promptsig.ConventionPlainText {
		return promptsig.OutputMarker + f.name + ": " + f.desc
	}
	return f.name + ": " + f.desc
}

// PromptValue renders a concrete value in the convention's output shape.
func (f *Output) PromptValue(value any, conv promptsig.Convention) string {
	switch conv {
	case promptsig.ConventionTagged:
		return "<" + f.name + ">" + display(value) + "</" + f.name + ">"
	case promptsig.ConventionPlainText:
		return promptsig.OutputMarker + f.name + ": " + display(value)
	default:
		return f.name + ": " + display(value)
	}
}

// Prompt renders the unfilled answer cue ending a plain-text prompt.
func (f *Output) Prompt(conv promptsig.Convention) string {
	if conv == promptsig.ConventionPlainText {
		return promptsig.OutputMarker + f.name + ":"
	}
	return f.name + ":"
}

// Hint injects fixed guidance text into the rendered prompt. It is neither
// validated nor parsed; only its text appears.
type Hint struct {
	base
}

// NewHint returns a hint field carrying the given guidance text.
func NewHint(name, text string) *Hint {
	return &Hint{base: newBase(name, text)}
}

// PromptDescription renders the guidance text itself.
func (f *Hint) PromptDescription(_ promptsig.Convention) string {
	return f.desc
}

// PromptValue renders the guidance text; hints carry no values.
func (f *Hint) PromptValue(_ any, _ promptsig.Convention) string {
	return f.desc
}

// Prompt renders nothing useful for hints; present to satisfy the
// descriptor contract.
func (f *Hint) Prompt(_ promptsig.Convention) string {
	return f.desc
}

var (
	_ promptsig.FieldDescriptor = (*Input)(nil)
	_ promptsig.FieldDescriptor = (*Output)(nil)
	_ promptsig.FieldDescriptor = (*Hint)(nil)
)
