package formcheck

import "net/http"

// Component bundles the form handlers, their configuration and routing
// helpers.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// ListHandler returns the form listing handler.
func (c *Component) ListHandler() http.Handler {
	if c == nil {
		return ListHandler()
	}
	return ListHandlerWithOptions(c.opts)
}

// ValidateHandler returns the validate handler.
func (c *Component) ValidateHandler() http.Handler {
	if c == nil {
		return ValidateHandler()
	}
	return ValidateHandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (Routes, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
