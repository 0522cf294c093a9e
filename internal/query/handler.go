package query

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	ocstats "go.opencensus.io/stats"
	"golang.org/x/sync/errgroup"

	"quadix/internal/cache"
	"quadix/internal/httputil"
	"quadix/internal/index"
	"quadix/internal/logging"
	"quadix/internal/object/model"
	"quadix/internal/stats"
	"quadix/pkg/container/quadtree"
)

const maxBodyBytes = 64 * 1024 * 1024

type region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r region) rect() quadtree.Rect {
	return quadtree.NewRect(r.X, r.Y, r.Width, r.Height)
}

type request struct {
	Regions []region `json:"regions"`
	// Exact post-filters candidates with an overlap test; the tree itself
	// over-approximates
	Exact bool `json:"exact"`
}

type response struct {
	Regions []regionResult `json:"regions"`
}

type regionResult struct {
	Region  region         `json:"region"`
	Objects []model.Object `json:"objects"`
}

func NewHandler(cfg *Config, idx index.Querier, queryCache *cache.Cache) (http.Handler, error) {
	return &handler{
		cfg:   cfg,
		idx:   idx,
		cache: queryCache,
	}, nil
}

type handler struct {
	cfg   *Config
	idx   index.Querier
	cache *cache.Cache
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
	if len(req.Regions) == 0 {
		httputil.RespBadRequest(ctx, w, `{"error": "at least one query region is required"}`)
		return
	}

	resp := response{Regions: make([]regionResult, len(req.Regions))}
	g, gctx := errgroup.WithContext(ctx)
	for i := range req.Regions {
		i := i
		g.Go(func() error {
			objects, err := h.query(gctx, req.Regions[i].rect(), req.Exact)
			if err != nil {
				return err
			}
			resp.Regions[i] = regionResult{Region: req.Regions[i], Objects: objects}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Errorf("error querying index: %v", err)
		httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
		return
	}

	w.Header().Set("content-type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("error encoding query response: %v", err)
	}
}

// query consults the cache first; exact queries bypass it since the cache
// holds the over-approximated candidate set.
func (h *handler) query(ctx context.Context, rect quadtree.Rect, exact bool) ([]model.Object, error) {
	defer ocstats.Record(ctx, stats.MQueries.M(1))

	if !exact {
		generation := h.idx.Generation()
		if objects, ok := h.cache.Get(ctx, generation, rect); ok {
			ocstats.Record(ctx, stats.MCacheHits.M(1))
			ocstats.Record(ctx, stats.MQueryCandidates.M(int64(len(objects))))
			return objects, nil
		}
		objects, err := h.idx.Query(rect, false)
		if err != nil {
			return nil, err
		}
		h.cache.Put(ctx, generation, rect, objects)
		ocstats.Record(ctx, stats.MQueryCandidates.M(int64(len(objects))))
		return objects, nil
	}

	objects, err := h.idx.Query(rect, true)
	if err != nil {
		return nil, err
	}
	ocstats.Record(ctx, stats.MQueryCandidates.M(int64(len(objects))))
	return objects, nil
}
