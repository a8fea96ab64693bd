// Package facilities carries the static aquatic-facility dataset. The set
// ships embedded in the binary and may be overridden from a YAML file.
package facilities

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/thearvindas/swim-facilities/internal/model"
)

//go:embed facilities.yaml
var embeddedDataset []byte

type dataset struct {
	Facilities []model.FacilityRecord `yaml:"facilities"`
}

// Default returns the embedded facility set.
func Default() ([]model.FacilityRecord, error) {
	return parse(embeddedDataset)
}

// Load returns facilities from the override file at path, falling back to
// the embedded set when path is empty or the file is unusable. Loading never
// fails the run as long as the embedded set parses.
func Load(path string) ([]model.FacilityRecord, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("facilities: override unreadable, using embedded set",
			zap.String("path", path),
			zap.Error(err),
		)
		return Default()
	}

	records, err := parse(data)
	if err != nil {
		zap.L().Warn("facilities: override malformed, using embedded set",
			zap.String("path", path),
			zap.Error(err),
		)
		return Default()
	}

	return records, nil
}

func parse(data []byte) ([]model.FacilityRecord, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, eris.Wrap(err, "facilities: unmarshal dataset")
	}

	// Entries without coordinates can't be placed on the map.
	out := ds.Facilities[:0:0]
	for _, f := range ds.Facilities {
		if !f.HasCoordinates() {
			zap.L().Warn("facilities: dropping entry without coordinates", zap.String("name", f.Name))
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
