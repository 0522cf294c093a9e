package load

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fastrand"

	"quadix/internal/httputil"
	"quadix/internal/logging"
	"quadix/pkg/container/quadtree"
	"quadix/pkg/rworker"
)

const UserAgent = "QUADIX/0.1"

type Manager interface {
	Run(context.Context) error
	Stop()
}

type Options struct {
	maxConcurrentRequest int
	requestTimeout       time.Duration
	interval             time.Duration
	objectsPerTick       int
	queriesPerTick       int
	bounds               quadtree.Rect
	clientConfig         httputil.HTTPClientConfig
}

type Option func(*manager)

func WithMaxConcurrentRequest(n int) Option {
	return func(o *manager) {
		o.opts.maxConcurrentRequest = n
	}
}

func WithInterval(t time.Duration) Option {
	return func(o *manager) {
		o.opts.interval = t
	}
}

func WithRequestTimeout(t time.Duration) Option {
	return func(o *manager) {
		o.opts.requestTimeout = t
	}
}

func WithObjectsPerTick(n int) Option {
	return func(o *manager) {
		o.opts.objectsPerTick = n
	}
}

func WithQueriesPerTick(n int) Option {
	return func(o *manager) {
		o.opts.queriesPerTick = n
	}
}

func WithBounds(r quadtree.Rect) Option {
	return func(o *manager) {
		o.opts.bounds = r
	}
}

func WithClientConfig(cfg httputil.HTTPClientConfig) Option {
	return func(o *manager) {
		o.opts.clientConfig = cfg
	}
}

func New(target string, shutdownCh chan<- error, opts ...Option) (*manager, error) {
	if target == "" {
		return nil, fmt.Errorf("load target is not defined")
	}
	m := &manager{
		target:     strings.TrimRight(target, "/"),
		shutdownCh: shutdownCh,
		opts: Options{
			maxConcurrentRequest: 64,
			requestTimeout:       10 * time.Second,
			interval:             time.Second,
			objectsPerTick:       64,
			queriesPerTick:       16,
			bounds:               quadtree.NewRect(0, 0, 1000, 1000),
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	client, err := httputil.NewClientFromConfig(m.opts.clientConfig, false)
	if err != nil {
		return nil, fmt.Errorf("unable to create http client: %w", err)
	}
	m.client = client
	m.rng.Seed(uint32(time.Now().UnixNano()))
	return m, nil
}

type manager struct {
	opts       Options
	target     string
	client     *http.Client
	rng        fastrand.RNG
	shutdownCh chan<- error
	cancel     func()
}

func (m *manager) Stop() {
	m.cancel()
}

func (m *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	go func() {
		defer func() {
			m.shutdownCh <- nil
		}()
		ticker := time.NewTicker(m.opts.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.fire(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// fire sends one tick worth of randomized inserts and queries, bounded by
// the concurrent request cap.
func (m *manager) fire(ctx context.Context) {
	logger := logging.FromContext(ctx)
	wg := sync.WaitGroup{}
	errCh := make(chan error, 1)
	rateCh := make(chan struct{}, m.opts.maxConcurrentRequest)

	// bodies are generated up front: the RNG is not safe for concurrent use
	for i := 0; i < m.opts.objectsPerTick; i++ {
		body, err := m.insertBody()
		if err != nil {
			logger.Errorf("building insert body: %v", err)
			continue
		}
		rworker.Job(&wg, func() error {
			return m.post(ctx, "/objects", body)
		}, rateCh, errCh)
	}
	for i := 0; i < m.opts.queriesPerTick; i++ {
		body, err := m.queryBody()
		if err != nil {
			logger.Errorf("building query body: %v", err)
			continue
		}
		rworker.Job(&wg, func() error {
			return m.post(ctx, "/query", body)
		}, rateCh, errCh)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		logger.Errorf("load manager error: %v", err)
	default:
	}
}

type rectPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (m *manager) randRect(maxSize uint32) rectPayload {
	b := m.opts.bounds
	return rectPayload{
		X:      b.X + float64(m.rng.Uint32n(uint32(b.Width))),
		Y:      b.Y + float64(m.rng.Uint32n(uint32(b.Height))),
		Width:  1 + float64(m.rng.Uint32n(maxSize)),
		Height: 1 + float64(m.rng.Uint32n(maxSize)),
	}
}

func (m *manager) insertBody() ([]byte, error) {
	return json.Marshal(struct {
		Data []rectPayload `json:"data"`
	}{Data: []rectPayload{m.randRect(10)}})
}

func (m *manager) queryBody() ([]byte, error) {
	return json.Marshal(struct {
		Regions []rectPayload `json:"regions"`
		Exact   bool          `json:"exact"`
	}{
		Regions: []rectPayload{m.randRect(100)},
		Exact:   m.rng.Uint32n(2) == 0,
	})
}

func (m *manager) post(ctx context.Context, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, m.opts.requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "POST", m.target+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Add("User-Agent", UserAgent)
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request error: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("response was not 200 OK: %s", respBody)
	}
	return nil
}
