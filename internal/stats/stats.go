package stats

import (
	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

var (
	MObjectsInserted = stats.Int64(
		"quadix/measures/objects_inserted", "Number of objects inserted into the index", stats.UnitDimensionless)
	MQueries = stats.Int64(
		"quadix/measures/queries", "Number of region queries served", stats.UnitDimensionless)
	MQueryCandidates = stats.Int64(
		"quadix/measures/query_candidates", "Number of candidates returned per region query", stats.UnitDimensionless)
	MCacheHits = stats.Int64(
		"quadix/measures/cache_hits", "Number of region queries answered from the cache", stats.UnitDimensionless)
)

var views = []*view.View{
	{
		Name:        "quadix/views/objects_inserted",
		Description: "Total objects inserted into the index",
		Measure:     MObjectsInserted,
		Aggregation: view.Sum(),
	},
	{
		Name:        "quadix/views/queries",
		Description: "Total region queries served",
		Measure:     MQueries,
		Aggregation: view.Count(),
	},
	{
		Name:        "quadix/views/query_candidates",
		Description: "Distribution of candidates per region query",
		Measure:     MQueryCandidates,
		Aggregation: view.Distribution(0, 1, 4, 16, 64, 256, 1024, 4096),
	},
	{
		Name:        "quadix/views/cache_hits",
		Description: "Total region queries answered from the cache",
		Measure:     MCacheHits,
		Aggregation: view.Count(),
	},
}

func RegisterViews() error {
	return view.Register(views...)
}

// NewExporter returns a prometheus exporter serving the registered views;
// it implements http.Handler.
func NewExporter() (*prometheus.Exporter, error) {
	return prometheus.NewExporter(prometheus.Options{Namespace: "quadix"})
}
