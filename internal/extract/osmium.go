package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/pkg/errors"
)

// OsmiumFilter shrinks a raw extract to the nodes matching tag filter
// expressions by running "osmium tags-filter".
type OsmiumFilter struct {
	Bin    string
	logger *zap.Logger
}

func NewOsmiumFilter(bin string, logger *zap.Logger) *OsmiumFilter {
	if bin == "" {
		bin = "osmium"
	}
	return &OsmiumFilter{Bin: bin, logger: logger}
}

// Filter writes the nodes of in matching any of the expressions ("n/amenity=cafe")
// to out. An existing out file is reused as is.
func (o *OsmiumFilter) Filter(ctx context.Context, in, out string, expressions []string) error {
	if _, err := os.Stat(out); err == nil {
		o.logger.Info("Filtered extract exists, skipping filter", zap.String("path", out))
		return nil
	}
	if _, err := os.Stat(in); os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", in, errors.ErrExtractMissing)
	}

	args := make([]string, 0, len(expressions)+4)
	args = append(args, "tags-filter", in)
	args = append(args, expressions...)
	args = append(args, "-o", out)

	start := time.Now()
	o.logger.Info("Filtering extract",
		zap.String("in", in),
		zap.String("out", out),
		zap.Int("expressions", len(expressions)))

	cmd := exec.CommandContext(ctx, o.Bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		_ = os.Remove(out)
		return fmt.Errorf("%s tags-filter: %w: %s", o.Bin, err, strings.TrimSpace(string(output)))
	}

	o.logger.Info("Extract filtered",
		zap.String("out", out),
		zap.Duration("duration", time.Since(start)))
	return nil
}
