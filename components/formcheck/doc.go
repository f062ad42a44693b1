// Package formcheck exposes form validation over HTTP.
//
// Two routes are mounted under a base path:
//
//	GET  {base}/api/forms                  -> {"data": ["grn", "issue", ...]}
//	POST {base}/api/forms/{form}/validate  -> {"form": "grn", "valid": false, "errors": {...}}
//
// The validate body is {"values": {...}, "locale": "es", "serverErrors": {...}}.
// Unknown forms answer 404 and undecodable bodies 400. A 422 means a rule
// could not be applied to the submitted value: either the rule set is broken
// or the snapshot carries a value of the wrong type for a check, such as a
// JSON number where maxLength expects a string ("grnNumber": 123). The body
// names the offending error key:
//
//	{"error": "validation: malformed rule set at \"grnNumber\": ...", "key": "grnNumber"}
//
// Clients should send form values as strings. RegisterRoutes works with
// *http.ServeMux and chi.
package formcheck
