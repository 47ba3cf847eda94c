package promptsig

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// fieldSet is an insertion-ordered name -> FieldDescriptor mapping.
type fieldSet struct {
	names  []string
	byName map[string]FieldDescriptor
}

func newFieldSet() fieldSet {
	return fieldSet{byName: make(map[string]FieldDescriptor)}
}

func (s *fieldSet) add(fd FieldDescriptor) bool {
	name := fd.Name()
	if _, ok := s.byName[name]; ok {
		return false
	}
	s.names = append(s.names, name)
	s.byName[name] = fd
	return true
}

func (s *fieldSet) has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s *fieldSet) len() int { return len(s.names) }

// fields returns descriptors in declaration order.
func (s *fieldSet) fields() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}

func (s *fieldSet) clone() fieldSet {
	return fieldSet{
		names:  slices.Clone(s.names),
		byName: maps.Clone(s.byName),
	}
}

// Signature partitions a declared field set into input, output, and hint
// roles, preserving declaration order within each role, and owns the
// signature's inline worked examples.
//
// A Signature is immutable after construction except for AppendExample,
// which an external trainer may call. Callers must serialize example
// mutation relative to concurrent Render/Parse use; the Signature does not
// lock.
type Signature struct {
	id       string
	name     string
	inputs   fieldSet
	outputs  fieldSet
	hints    fieldSet
	examples []Example
}

// NewSignature builds a Signature from explicit field declarations.
// Every field name must appear in exactly one role; duplicates fail with
// ErrSchemaMismatch. Inline examples are validated against the schema at
// construction, also failing with ErrSchemaMismatch on any undeclared
// example field or on a scalar output with more than one declared output
// field.
func NewSignature(opts ...SignatureOption) (*Signature, error) {
	cfg := signatureConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	sig := &Signature{
		id:      uuid.NewString(),
		name:    cfg.name,
		inputs:  newFieldSet(),
		outputs: newFieldSet(),
		hints:   newFieldSet(),
	}
	type roleFields struct {
		set *fieldSet
		fds []FieldDescriptor
	}
	for _, role := range []roleFields{
		{&sig.inputs, cfg.inputs},
		{&sig.outputs, cfg.outputs},
		{&sig.hints, cfg.hints},
	} {
		for _, fd := range role.fds {
			name := fd.Name()
			if sig.inputs.has(name) || sig.outputs.has(name) || sig.hints.has(name) {
				return nil, &FieldError{Field: name, Signature: cfg.name, Err: ErrSchemaMismatch}
			}
			role.set.add(fd)
		}
	}
	for _, ex := range cfg.examples {
		if err := sig.validateExample(ex); err != nil {
			return nil, err
		}
	}
	sig.examples = slices.Clone(cfg.examples)
	return sig, nil
}

// ID returns the unique instance identifier assigned at construction.
func (s *Signature) ID() string { return s.id }

// Name returns the caller-supplied signature name, if any.
func (s *Signature) Name() string { return s.name }

// InputFields returns the declared input fields in declaration order.
func (s *Signature) InputFields() []FieldDescriptor { return s.inputs.fields() }

// OutputFields returns the declared output fields in declaration order.
func (s *Signature) OutputFields() []FieldDescriptor { return s.outputs.fields() }

// HintFields returns the declared hint fields in declaration order.
func (s *Signature) HintFields() []FieldDescriptor { return s.hints.fields() }

// Examples returns a copy of the inline worked examples.
func (s *Signature) Examples() []Example { return slices.Clone(s.examples) }

// AppendExample validates ex against the schema and appends it to the
// inline example list. Not safe to call concurrently with Render.
func (s *Signature) AppendExample(ex Example) error {
	if err := s.validateExample(ex); err != nil {
		return err
	}
	s.examples = append(s.examples, ex)
	return nil
}

// Clone returns a copy with cloned role sets and example list. Registries
// use this so callers cannot mutate cached signatures.
func (s *Signature) Clone() *Signature {
	if s == nil {
		return nil
	}
	return &Signature{
		id:       s.id,
		name:     s.name,
		inputs:   s.inputs.clone(),
		outputs:  s.outputs.clone(),
		hints:    s.hints.clone(),
		examples: slices.Clone(s.examples),
	}
}

// ValidateInputs checks caller-supplied input values against the declared
// input fields and returns transformed values. A missing required field
// fails with ErrMissingInput; a missing optional field maps to an explicit
// nil; a value rejected by the field's own validator fails with
// ErrInvalidInput. Undeclared keys are ignored.
func (s *Signature) ValidateInputs(inputs map[string]any) (map[string]any, error) {
	if s.inputs.len() == 0 {
		return maps.Clone(inputs), nil
	}
	validated := make(map[string]any, s.inputs.len())
	for _, name := range s.inputs.names {
		fd := s.inputs.byName[name]
		value, ok := inputs[name]
		if !ok {
			if !fd.IsOptional() {
				return nil, &FieldError{Field: name, Signature: s.name, Err: ErrMissingInput}
			}
			validated[name] = nil
			continue
		}
		if !fd.ValidateValue(inputs, value) {
			return nil, &FieldError{Field: name, Signature: s.name, Err: ErrInvalidInput}
		}
		validated[name] = fd.TransformValue(value)
	}
	return validated, nil
}

func (s *Signature) validateExample(ex Example) error {
	for name := range ex.Inputs {
		if !s.inputs.has(name) {
			return &FieldError{Field: name, Signature: s.name, Err: ErrSchemaMismatch}
		}
	}
	switch out := ex.Output.(type) {
	case FieldOutput:
		for name := range out {
			if !s.outputs.has(name) {
				return &FieldError{Field: name, Signature: s.name, Err: ErrSchemaMismatch}
			}
		}
	case ScalarOutput:
		if s.outputs.len() != 1 {
			return fmt.Errorf("%w: scalar example output requires exactly one output field, signature declares %d",
				ErrSchemaMismatch, s.outputs.len())
		}
	case nil:
		return fmt.Errorf("%w: example output must not be nil", ErrSchemaMismatch)
	}
	return nil
}

// exampleValue resolves the example output value for one declared output
// field. A FieldOutput yields the mapped value; a ScalarOutput yields the
// same value for every output field (there being exactly one).
func exampleValue(out ExampleOutput, field string) any {
	switch o := out.(type) {
	case FieldOutput:
		return o[field]
	case ScalarOutput:
		return o.Value
	default:
		return nil
	}
}
