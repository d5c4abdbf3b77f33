package app

import (
	"net/http"
	"strings"

	"hotelinfinity/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// RouteLabel resolves a request to its registered route pattern so metric
// labels stay bounded. Unknown paths yield "".
func RouteLabel(router *httprouter.Router) middleware.RouteLabeler {
	return func(r *http.Request) string {
		handle, params, _ := router.Lookup(r.Method, r.URL.Path)
		if handle == nil {
			return ""
		}
		if len(params) == 0 {
			return r.URL.Path
		}

		segments := strings.Split(r.URL.Path, "/")
		next := 0
		for i, seg := range segments {
			if next < len(params) && seg == params[next].Value {
				segments[i] = ":" + params[next].Key
				next++
			}
		}
		return strings.Join(segments, "/")
	}
}
