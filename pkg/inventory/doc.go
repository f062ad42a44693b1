// Package inventory bundles the rule sets and message catalogs of the
// inventory screens (purchase orders, goods receipt notes, issues, returns
// and requisitions) together with the typed payloads submitted once a
// snapshot validates.
package inventory
