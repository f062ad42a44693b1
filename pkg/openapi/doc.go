// Package openapi derives validation rule specs from the request body schema
// of an OpenAPI 3 operation, so client-side rules can be bootstrapped from the
// backend contract instead of being written by hand.
package openapi
