// Package prompt fills form snapshots interactively on a terminal, checking
// each answer against the field's rules as it is entered.
package prompt
