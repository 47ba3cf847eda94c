// Package fields provides the default FieldDescriptor implementations:
// input, output, and hint fields with per-convention prompt formatting and
// pluggable validation and value transforms.
package fields
