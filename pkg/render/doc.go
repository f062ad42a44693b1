// Package render prepares validation results for presentation: ordering
// error maps for inline display and folding backend error payloads into the
// same keys the validation engine produces.
package render
