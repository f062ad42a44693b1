package formcheck

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register net/http handlers. It is
// satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes holds the patterns registered by RegisterRoutes.
type Routes struct {
	List     string
	Validate string
}

// MountPath returns the form listing path under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// ValidatePath returns the validate endpoint for formID under basePath.
func ValidatePath(basePath, formID string, fns ...OptionFn) string {
	return MountPath(basePath, fns...) + "/" + strings.TrimSpace(formID) + "/validate"
}

// RegisterRoutes registers the listing and validate handlers under basePath
// on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("formcheck: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	list := mountPath(basePath, opts.RoutePath)
	routes := Routes{
		List:     list,
		Validate: list + "/{form}/validate",
	}
	mux.Handle(routes.List, ListHandlerWithOptions(opts))
	mux.Handle(routes.Validate, ValidateHandlerWithOptions(opts))
	return routes, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimRight(strings.TrimSpace(routePath), "/")

	if routePath == "" {
		routePath = defaultRoutePath
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
