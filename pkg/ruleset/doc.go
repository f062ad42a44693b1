// Package ruleset loads declarative form rule documents (JSON or YAML) and
// compiles them into validation rules keyed by form id.
//
// A document looks like:
//
//	forms:
//	  grn:
//	    title: Goods Receipt Note
//	    endpoint: /api/grn
//	    rules:
//	      - field: grnNumber
//	        checks:
//	          - name: required
//	            message: GRN number is required
//	      - field: rows
//	        rows:
//	          poQty:
//	            - name: isNumber
//	              message: PO quantity must be a number
package ruleset
