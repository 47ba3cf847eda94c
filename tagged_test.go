package promptsig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/promptsig"
	"github.com/skosovsky/promptsig/fields"
)

// aiMessage mimics an SDK response object carrying text content.
type aiMessage struct {
	content string
}

func (m aiMessage) Content() string { return m.content }

func TestTagged_RenderMessageSequence(t *testing.T) {
	t.Parallel()
	sig, err := promptsig.NewSignature(
		promptsig.WithInputs(fields.NewInput("question", "The question")),
		promptsig.WithOutputs(fields.NewOutput("answer", "The answer")),
		promptsig.WithHints(fields.NewHint("style", "Answer in one word.")),
		promptsig.WithExamples(promptsig.Example{
			Inputs: map[string]any{"question": "3+3?"},
			Output: promptsig.ScalarOutput{Value: "6"},
		}),
	)
	require.NoError(t, err)
	strategy := promptsig.NewDefaultStrategy(sig)
	trained := trainedStub{{
		Inputs: map[string]any{"question": "5+5?"},
		Output: promptsig.ScalarOutput{Value: "10"},
	}}

	prompt, err := strategy.Render(promptsig.ConventionTagged,
		map[string]any{"question": "2+2?"},
		promptsig.WithTrainedState(trained))
	require.NoError(t, err)
	msgs, ok := prompt.(promptsig.MessagesPrompt)
	require.True(t, ok)
	require.Len(t, msgs.Messages, 8)

	assert.Equal(t, promptsig.RoleSystem, msgs.Messages[0].Role)
	for _, m := range msgs.Messages[1:] {
		assert.Equal(t, promptsig.RoleUser, m.Role)
	}
	assert.Contains(t, msgs.Messages[1].Content, "Provide answers for output fields answer.")
	assert.Contains(t, msgs.Messages[1].Content, "Follow the XML output format")
	assert.Equal(t, "Hints:\nAnswer in one word.", msgs.Messages[2].Content)
	assert.Equal(t,
		"<input_fields>\nquestion: The question\n</input_fields>\n<output_fields>\nanswer: The answer\n</output_fields>",
		msgs.Messages[3].Content)
	assert.Equal(t,
		"<example>\n<input>\n<question>3+3?</question>\n</input>\n<output>\n<answer>6</answer>\n</output>\n</example>",
		msgs.Messages[4].Content)
	assert.Equal(t,
		"<example>\n<input>\n<question>5+5?</question>\n</input>\n<output>\n<answer>10</answer>\n</output>\n</example>",
		msgs.Messages[5].Content)
	assert.Equal(t, "<input>\n<question>2+2?</question>\n</input>", msgs.Messages[6].Content)
	assert.Equal(t,
		"Respond with the output in the following format:\n<output>\n[Your response here]\n</output>",
		msgs.Messages[7].Content)
}

func TestTagged_RenderWithoutHintsOrExamples(t *testing.T) {
	t.Parallel()
	strategy := promptsig.NewDefaultStrategy(qaSignature(t))
	prompt, err := strategy.Render(promptsig.ConventionTagged, map[string]any{"question": "2+2?"})
	require.NoError(t, err)
	msgs := prompt.(promptsig.MessagesPrompt)
	// Preamble, instruction, field descriptions, input, closing format.
	require.Len(t, msgs.Messages, 5)
	assert.NotContains(t, msgs.Messages[2].Content, "Hints:")
}

func TestTagged_ParseRoundTrip(t *testing.T) {
	t.Parallel()
	sig, err := promptsig.NewSignature(
		promptsig.WithOutputs(
			fields.NewOutput("summary", "s"),
			fields.NewOutput("score", "v"),
		),
	)
	require.NoError(t, err)
	strategy := promptsig.NewDefaultStrategy(sig)

	parsed, err := strategy.Parse("<summary>ok</summary><score>5</score>", promptsig.ConventionTagged)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"summary": "ok", "score": "5"}, parsed)
}

func TestTagged_ParseLastOccurrenceWins(t *testing.T) {
	t.Parallel()
	strategy := promptsig.NewDefaultStrategy(qaSignature(t))
	raw := "<answer>draft</answer>\nLet me reconsider.\n<answer>final</answer>"
	parsed, err := strategy.Parse(raw, promptsig.ConventionTagged)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"answer": "final"}, parsed)
}

func TestTagged_ParseMultilineAndWhitespace(t *testing.T) {
	t.Parallel()
	strategy := promptsig.NewDefaultStrategy(qaSignature(t))
	raw := "<answer>\n  first line\nsecond line\n</answer>"
	parsed, err := strategy.Parse(raw, promptsig.ConventionTagged)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"answer": "first line\nsecond line"}, parsed)
}

func TestTagged_ParseMissingFieldAbsent(t *testing.T) {
	t.Parallel()
	sig, err := promptsig.NewSignature(
		promptsig.WithOutputs(
			fields.NewOutput("summary", "s"),
			fields.NewOutput("score", "v"),
		),
	)
	require.NoError(t, err)
	strategy := promptsig.NewDefaultStrategy(sig)

	parsed, err := strategy.Parse("<summary>ok</summary>", promptsig.ConventionTagged)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"summary": "ok"}, parsed)
	_, ok := parsed["score"]
	assert.False(t, ok, "unanswered field must be absent, not nil")
}

func TestTagged_ParseUnwrapsContentCarrier(t *testing.T) {
	t.Parallel()
	strategy := promptsig.NewDefaultStrategy(qaSignature(t))
	parsed, err := strategy.Parse(aiMessage{content: "<answer>4</answer>"}, promptsig.ConventionTagged)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"answer": "4"}, parsed)
}
