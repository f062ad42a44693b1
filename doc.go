// Package formcheck validates inventory form snapshots (flat fields plus
// tabular row collections) against declarative rule sets and reports the
// first failing message per field in a flat error map.
//
// Most callers start with New:
//
//	checker := formcheck.New()
//	result, err := checker.Validate(ctx, formcheck.Request{
//		FormID: "grn",
//		Values: formcheck.Values{"grnNumber": "", "rows": rows},
//	})
package formcheck
