package promptsig

import (
	"fmt"

	"go.uber.org/zap"
)

// Strategy is the format-dispatch contract: given a convention, render a
// prompt from input values or parse raw model output into a field-keyed
// mapping. Implementations dispatch on the Convention enum and fail with
// ErrUnsupportedConvention for anything else.
type Strategy interface {
	Render(conv Convention, inputs map[string]any, opts ...RenderOption) (Prompt, error)
	Parse(raw any, conv Convention) (map[string]any, error)
}

// renderRequest carries validated inputs and resolved example lists into a
// concrete formatter. Inline examples come first; trained examples are
// already gated by the training switch.
type renderRequest struct {
	inputs   map[string]any
	examples []Example
	trained  []Example
}

// formatter is one concrete render/parse pair for a single convention.
type formatter interface {
	render(req renderRequest) (Prompt, error)
	parse(raw string) (map[string]any, error)
}

// DefaultStrategy implements Strategy with the three built-in formatter
// variants. Rendering and parsing are pure functions of the signature and
// the call arguments; the only shared mutable state is the signature's own
// example list, which callers must not mutate concurrently with use.
type DefaultStrategy struct {
	sig    *Signature
	logger *zap.Logger
	plain  *plainTextFormatter
	json   *jsonFormatter
	tagged *taggedFormatter
}

// NewDefaultStrategy builds a strategy bound to sig. The logging sink
// defaults to zap.NewNop(); inject one with WithLogger to capture
// render/parse diagnostics.
func NewDefaultStrategy(sig *Signature, opts ...StrategyOption) *DefaultStrategy {
	s := &DefaultStrategy{sig: sig, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.plain = &plainTextFormatter{sig: sig, logger: s.logger}
	s.json = &jsonFormatter{sig: sig}
	s.tagged = newTaggedFormatter(sig)
	return s
}

// Render validates inputs against the signature and renders a prompt in
// the requested convention. Trained examples are appended after inline
// examples iff training is enabled (the default) and the trained state has
// a non-empty example list. Failures are logged with the offending inputs
// and returned, never swallowed.
func (s *DefaultStrategy) Render(conv Convention, inputs map[string]any, opts ...RenderOption) (Prompt, error) {
	cfg := renderConfig{useTraining: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	validated, err := s.sig.ValidateInputs(inputs)
	if err != nil {
		s.logger.Error("input validation failed",
			zap.String("signature", s.sig.Name()),
			zap.Any("inputs", inputs),
			zap.Error(err))
		return nil, err
	}
	var f formatter
	switch conv {
	case ConventionPlainText:
		f = s.plain
	case ConventionJSON:
		f = s.json
	case ConventionTagged:
		f = s.tagged
	default:
		err := fmt.Errorf("%w: render %q", ErrUnsupportedConvention, conv)
		s.logger.Error("render dispatch failed", zap.Error(err))
		return nil, err
	}
	req := renderRequest{inputs: validated, examples: s.sig.Examples()}
	if cfg.override {
		req.examples = cfg.examples
	}
	if cfg.useTraining && cfg.trained != nil {
		req.trained = cfg.trained.Examples()
	}
	prompt, err := f.render(req)
	if err != nil {
		s.logger.Error("render failed",
			zap.String("signature", s.sig.Name()),
			zap.String("convention", string(conv)),
			zap.Any("inputs", inputs),
			zap.Error(err))
		return nil, err
	}
	return prompt, nil
}

// Parse dispatches raw model output to the parser for conv and returns a
// mapping keyed by declared output field names. raw may be a string or any
// value implementing ContentCarrier; the carried content is unwrapped
// transparently. ConventionTest parses like ConventionPlainText.
func (s *DefaultStrategy) Parse(raw any, conv Convention) (map[string]any, error) {
	var f formatter
	switch conv {
	case ConventionPlainText, ConventionTest:
		f = s.plain
	case ConventionJSON:
		f = s.json
	case ConventionTagged:
		f = s.tagged
	default:
		err := fmt.Errorf("%w: parse %q", ErrUnsupportedConvention, conv)
		s.logger.Error("parse dispatch failed", zap.Error(err))
		return nil, err
	}
	text, err := contentOf(raw)
	if err != nil {
		s.logger.Error("parse failed", zap.Any("raw", raw), zap.Error(err))
		return nil, err
	}
	parsed, err := f.parse(text)
	if err != nil {
		s.logger.Error("parse failed",
			zap.String("signature", s.sig.Name()),
			zap.String("convention", string(conv)),
			zap.String("raw", text),
			zap.Error(err))
		return nil, err
	}
	return parsed, nil
}

// contentOf unwraps raw model output into plain text.
func contentOf(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case ContentCarrier:
		return v.Content(), nil
	default:
		return "", fmt.Errorf("%w: got %T", ErrInvalidOutput, raw)
	}
}

// fieldNames returns display names in declaration order.
func fieldNames(fields []FieldDescriptor) []string {
	names := make([]string, 0, len(fields))
	for _, fd := range fields {
		names = append(names, fd.Name())
	}
	return names
}

// resolveOutputField finds the declared output field whose display name
// equals name; first match wins.
func resolveOutputField(fields []FieldDescriptor, name string) FieldDescriptor {
	for _, fd := range fields {
		if fd.Name() == name {
			return fd
		}
	}
	return nil
}

var _ Strategy = (*DefaultStrategy)(nil)
