package promptsig_test

import (
	"fmt"

	"github.com/skosovsky/promptsig"
	"github.com/skosovsky/promptsig/fields"
)

func ExampleNewSignature() {
	sig, err := promptsig.NewSignature(
		promptsig.WithName("qa"),
		promptsig.WithInputs(fields.NewInput("question", "The question to answer")),
		promptsig.WithOutputs(fields.NewOutput("answer", "A short factual answer")),
		promptsig.WithExamples(promptsig.Example{
			Inputs: map[string]any{"question": "What is 2+2?"},
			Output: promptsig.ScalarOutput{Value: "4"},
		}),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sig.Name(), len(sig.InputFields()), len(sig.OutputFields()), len(sig.Examples()))
	// Output: qa 1 1 1
}

func ExampleDefaultStrategy_Parse() {
	sig, err := promptsig.NewSignature(
		promptsig.WithOutputs(
			fields.NewOutput("summary", "One line summary"),
			fields.NewOutput("score", "Quality score"),
		),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	strategy := promptsig.NewDefaultStrategy(sig)

	parsed, err := strategy.Parse("<summary>looks good</summary><score>5</score>", promptsig.ConventionTagged)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(parsed["summary"])
	fmt.Println(parsed["score"])
	// Output:
	// looks good
	// 5
}

func ExampleDefaultStrategy_Render() {
	sig, err := promptsig.NewSignature(
		promptsig.WithInputs(fields.NewInput("question", "The question")),
		promptsig.WithOutputs(fields.NewOutput("answer", "The answer")),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	strategy := promptsig.NewDefaultStrategy(sig)

	prompt, err := strategy.Render(promptsig.ConventionTagged, map[string]any{"question": "What is 2+2?"})
	if err != nil {
		fmt.Println(err)
		return
	}
	messages := prompt.(promptsig.MessagesPrompt).Messages
	fmt.Println(len(messages))
	fmt.Println(messages[len(messages)-2].Content)
	// Output:
	// 5
	// <input>
	// <question>What is 2+2?</question>
	// </input>
}
