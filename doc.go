// Package promptsig builds LLM prompts from declarative field signatures
// and parses raw model output back into those fields. It supports three
// wire conventions (plain-text, json-structured, tagged-markup), few-shot
// example interpolation, and trained-example injection at render time.
package promptsig
