package promptsig

// Convention selects one of the supported prompt/response wire formats.
// Renderers and parsers dispatch on it; unknown values fail with
// ErrUnsupportedConvention rather than defaulting.
type Convention string

// Supported wire conventions.
const (
	// ConventionPlainText renders a single worked-example cookbook string
	// and parses marker-delimited "name: value" chunks back out.
	ConventionPlainText Convention = "plain-text"
	// ConventionJSON renders field schemas and values as 2-space-indented
	// JSON blocks and parses the response as one JSON object.
	ConventionJSON Convention = "json-structured"
	// ConventionTagged renders a sequence of role-tagged chat messages and
	// parses XML-style <field>...</field> tags from the response.
	ConventionTagged Convention = "tagged-markup"
	// ConventionTest is a test-only alias: parsing behaves like
	// ConventionPlainText. Rendering does not accept it.
	ConventionTest Convention = "test"
)

// OutputMarker is the unique glyph the plain-text renderer prefixes to
// output field lines. The plain-text parser splits raw model output on it,
// so renderer and parser must agree on the exact rune.
const OutputMarker = "🔑"

// Role is the message role in a tagged-markup prompt.
type Role string

// Chat message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single role-tagged message in a tagged-markup prompt.
type ChatMessage struct {
	Role    Role
	Content string
}

// Prompt is a sealed union of rendered prompt shapes. Only package types
// implement it via isPrompt(): TextPrompt for the plain-text and
// json-structured conventions, MessagesPrompt for tagged-markup.
type Prompt interface {
	isPrompt()
}

// TextPrompt holds a single formatted prompt string.
type TextPrompt struct {
	Text string
}

func (TextPrompt) isPrompt() {}

// MessagesPrompt holds an ordered sequence of role-tagged messages.
type MessagesPrompt struct {
	Messages []ChatMessage
}

func (MessagesPrompt) isPrompt() {}

// ExampleOutput is a sealed union of worked-example output shapes: a single
// scalar value (ScalarOutput) or an explicit field-to-value mapping
// (FieldOutput). A ScalarOutput is only valid against a signature that
// declares exactly one output field; it binds to that field implicitly.
type ExampleOutput interface {
	isExampleOutput()
}

// ScalarOutput is a bare example output value bound to the signature's
// single declared output field.
type ScalarOutput struct {
	Value any
}

func (ScalarOutput) isExampleOutput() {}

// FieldOutput maps declared output field names to example values.
type FieldOutput map[string]any

func (FieldOutput) isExampleOutput() {}

// Example is one worked input/output pair, either declared inline on a
// Signature or supplied by a TrainedState at render time.
type Example struct {
	Inputs map[string]any
	Output ExampleOutput
}

// TrainedState supplies examples learned by an external optimization
// process. They are merged after inline examples when rendering and are
// validated only implicitly, since they originate outside the schema.
type TrainedState interface {
	Examples() []Example
}

// FieldDescriptor is one named, typed input/output/hint slot. It knows how
// to validate, transform, and render itself in each convention; this
// package consumes the interface and never inspects field internals.
type FieldDescriptor interface {
	// Name is the field's display name, used as its key in parsed output.
	Name() string
	// Desc is the human-readable field description shown in prompts.
	Desc() string
	// IsOptional reports whether input validation tolerates an absent value.
	IsOptional() bool
	// ValidateValue reports whether value is acceptable given ctx.
	ValidateValue(ctx map[string]any, value any) bool
	// TransformValue converts a raw value into its canonical form.
	TransformValue(value any) any
	// PromptDescription renders the field's "name: description" line.
	PromptDescription(conv Convention) string
	// PromptValue renders a concrete value for display in a prompt.
	PromptValue(value any, conv Convention) string
	// PromptValueJSON renders a concrete value as a JSON fragment.
	PromptValueJSON(value any, conv Convention) map[string]any
	// Prompt renders the bare marker line signalling where the model
	// must answer (plain-text convention).
	Prompt(conv Convention) string
	// PromptJSON renders the field's JSON answer placeholder.
	PromptJSON(conv Convention) map[string]any
}

// ContentCarrier is implemented by message-like values that wrap raw model
// output, e.g. an SDK response object. Parse unwraps them transparently.
type ContentCarrier interface {
	Content() string
}
