// Package i18n translates validation messages. Checks carrying a MessageKey
// are resolved through a Translator; a YAML-backed Catalog is provided.
package i18n
