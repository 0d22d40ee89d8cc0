package app

import (
	"errors"

	"github.com/indigo-web/catalina/http"
	"github.com/indigo-web/catalina/http/mime"
	"github.com/indigo-web/catalina/resource"
)

// Static serves resources by the request path. Missing ones result in 404 with the
// not found page.
func (h *Handlers) Static(request *http.Request) (*http.Response, error) {
	path := request.Path()

	data, err := h.static.Resolve(path)
	switch {
	case err == nil:
		return http.NewResponse().
			ContentType(mime.ByPath(path)).
			Bytes(data), nil
	case errors.Is(err, resource.ErrNotFound):
		h.logger.Debug().Str("path", path).Msg("resource not found")
		return h.notFound()
	default:
		return nil, err
	}
}
