package promptsig

import "go.uber.org/zap"

type signatureConfig struct {
	name     string
	inputs   []FieldDescriptor
	outputs  []FieldDescriptor
	hints    []FieldDescriptor
	examples []Example
}

// SignatureOption configures NewSignature (functional options pattern).
type SignatureOption func(*signatureConfig)

// WithName sets the signature name used in error and log context.
func WithName(name string) SignatureOption {
	return func(c *signatureConfig) {
		c.name = name
	}
}

// WithInputs declares input fields in order.
func WithInputs(fields ...FieldDescriptor) SignatureOption {
	return func(c *signatureConfig) {
		c.inputs = append(c.inputs, fields...)
	}
}

// WithOutputs declares output fields in order.
func WithOutputs(fields ...FieldDescriptor) SignatureOption {
	return func(c *signatureConfig) {
		c.outputs = append(c.outputs, fields...)
	}
}

// WithHints declares hint fields in order.
func WithHints(fields ...FieldDescriptor) SignatureOption {
	return func(c *signatureConfig) {
		c.hints = append(c.hints, fields...)
	}
}

// WithExamples attaches inline worked examples, validated at construction.
func WithExamples(examples ...Example) SignatureOption {
	return func(c *signatureConfig) {
		c.examples = append(c.examples, examples...)
	}
}

// StrategyOption configures NewDefaultStrategy.
type StrategyOption func(*DefaultStrategy)

// WithLogger injects the logging sink used for render/parse diagnostics.
// Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) StrategyOption {
	return func(s *DefaultStrategy) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type renderConfig struct {
	trained     TrainedState
	useTraining bool
	examples    []Example
	override    bool
}

// RenderOption configures a single Render call.
type RenderOption func(*renderConfig)

// WithTrainedState supplies learned examples merged after inline examples.
func WithTrainedState(ts TrainedState) RenderOption {
	return func(c *renderConfig) {
		c.trained = ts
	}
}

// WithoutTraining excludes trained-state examples from the rendered prompt
// even when a trained state is supplied. Training is on by default.
func WithoutTraining() RenderOption {
	return func(c *renderConfig) {
		c.useTraining = false
	}
}

// WithExampleOverride replaces the signature's inline examples for this
// render call only. Passing an empty slice renders with no inline examples.
func WithExampleOverride(examples []Example) RenderOption {
	return func(c *renderConfig) {
		c.examples = examples
		c.override = true
	}
}
