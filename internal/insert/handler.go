package insert

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	ocstats "go.opencensus.io/stats"

	"quadix/internal/httputil"
	"quadix/internal/index"
	"quadix/internal/logging"
	"quadix/internal/object/model"
	"quadix/internal/stats"
)

const maxBodyBytes = 64 * 1024 * 1024

type request struct {
	Data []struct {
		X      float64     `json:"x"`
		Y      float64     `json:"y"`
		Width  float64     `json:"width"`
		Height float64     `json:"height"`
		Extra  interface{} `json:"extra"`
	} `json:"data"`
}

func NewHandler(cfg *Config, idx index.Appender) (http.Handler, error) {
	return &handler{
		idx: idx,
		cfg: cfg,
	}, nil
}

type handler struct {
	idx index.Appender
	cfg *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debug(fmt.Sprintf(`{"error": "method %v is not allowed"}`, r.Method))
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debug(fmt.Sprintf(`{"error": "%v"}`, "content-type is not application/json"))
		_, _ = fmt.Fprintf(w, `{"error": "%v"}`, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	objects := make([]model.Object, 0, len(req.Data))
	for _, dat := range req.Data {
		objects = append(objects, model.NewObject(dat.X, dat.Y, dat.Width, dat.Height, dat.Extra))
	}
	if err := h.idx.Append(objects...); err != nil {
		logger.Errorf("error indexing objects: %v", err)
		httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
		return
	}
	ocstats.Record(ctx, stats.MObjectsInserted.M(int64(len(objects))))
	logger.Infof("indexed %d objects", len(objects))

	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `{"status": "ok", "count": %d}`, len(objects))
}
