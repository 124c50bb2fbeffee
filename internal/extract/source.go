// Package extract reads tagged features out of OSM extracts.
package extract

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/pkg/errors"
)

// ErrStop ends an Each iteration early without failing it.
var ErrStop = stderrors.New("stop iteration")

// FeatureSource yields the features of one extract in file order.
type FeatureSource interface {
	Each(ctx context.Context, fn func(domain.Feature) error) error
}

// PBFSource reads tagged nodes from a .osm.pbf file. Ways and relations are
// skipped.
type PBFSource struct {
	Path string
	// Procs is the number of decoder goroutines.
	Procs  int
	logger *zap.Logger
}

func NewPBFSource(path string, procs int, logger *zap.Logger) *PBFSource {
	if procs < 1 {
		procs = 1
	}
	return &PBFSource{Path: path, Procs: procs, logger: logger}
}

func (s *PBFSource) Each(ctx context.Context, fn func(domain.Feature) error) error {
	f, err := os.Open(s.Path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", s.Path, errors.ErrExtractMissing)
	}
	if err != nil {
		return fmt.Errorf("open extract: %w", err)
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, s.Procs)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	nodes := 0
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok || len(node.Tags) == 0 {
			continue
		}
		nodes++

		err := fn(domain.Feature{
			ID:   int64(node.ID),
			Tags: node.Tags.Map(),
			Lat:  node.Lat,
			Lon:  node.Lon,
		})
		if stderrors.Is(err, ErrStop) {
			break
		}
		if err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("decode extract %s: %w", s.Path, err)
	}

	s.logger.Debug("Extract read", zap.String("path", s.Path), zap.Int("tagged_nodes", nodes))
	return nil
}
