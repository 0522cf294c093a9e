package inspect

import (
	"io"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"quadix/internal/index"
)

type statser interface {
	Stats() index.Stats
}

// NewHandler returns a plain-text dump of the index counters for the debug
// surface.
func NewHandler(idx statser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, spew.Sdump(idx.Stats()))
	})
}
