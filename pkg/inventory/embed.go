package inventory

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/ruleset"
)

// Form ids of the built-in inventory screens.
const (
	FormPurchaseOrder = "purchaseOrder"
	FormGRN           = "grn"
	FormIssue         = "issue"
	FormReturn        = "return"
	FormRequisition   = "requisition"
)

// DefaultLocale is the locale the embedded messages are written in.
const DefaultLocale = "en"

//go:embed forms/*.yaml
var embeddedForms embed.FS

//go:embed locales/*.yaml
var embeddedLocales embed.FS

var (
	storeOnce sync.Once
	store     *ruleset.Store

	catalogOnce sync.Once
	catalog     *i18n.Catalog
)

// FormsFS returns the bundled rule documents.
func FormsFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// LocalesFS returns the bundled message catalogs.
func LocalesFS() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// Store returns the compiled built-in forms. The documents ship with the
// binary, so a compile failure is a programming error and panics.
func Store() *ruleset.Store {
	storeOnce.Do(func() {
		loaded, err := ruleset.LoadFS(FormsFS())
		if err != nil {
			panic(err)
		}
		store = loaded
	})
	return store
}

// FormIDs lists the built-in form ids in sorted order.
func FormIDs() []string {
	return Store().Forms()
}

// Catalog returns the bundled message catalog (English and Spanish).
func Catalog() *i18n.Catalog {
	catalogOnce.Do(func() {
		loaded, err := i18n.LoadCatalogFS(DefaultLocale, LocalesFS())
		if err != nil {
			panic(err)
		}
		catalog = loaded
	})
	return catalog
}
