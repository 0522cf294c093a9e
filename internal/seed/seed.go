package seed

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"quadix/internal/index"
	"quadix/internal/logging"
	"quadix/internal/object/model"
)

type seedFile struct {
	Objects []seedObject `toml:"objects"`
}

type seedObject struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Extra  string  `toml:"extra"`
}

// Load reads a TOML seed file into objects ready for indexing.
func Load(path string) ([]model.Object, error) {
	var f seedFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decoding seed file %s: %w", path, err)
	}

	objects := make([]model.Object, 0, len(f.Objects))
	for _, o := range f.Objects {
		objects = append(objects, model.NewObject(o.X, o.Y, o.Width, o.Height, o.Extra))
	}
	return objects, nil
}

// Apply loads the seed file and indexes its objects. A configured but broken
// seed file is a startup failure.
func Apply(ctx context.Context, path string, appender index.Appender) error {
	logger := logging.FromContext(ctx)
	objects, err := Load(path)
	if err != nil {
		return err
	}
	if err := appender.Append(objects...); err != nil {
		return fmt.Errorf("indexing seed objects: %w", err)
	}
	logger.Infof("seeded %d objects from %s", len(objects), path)
	return nil
}
