package converter

// CSV -> draw.io scatterplot pipeline
// read rows -> bind columns -> extract records -> bounds -> assemble -> encode -> write
// The output file is only touched once the whole document and its preview are built

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"scatter-drawio/internal/config"
	"scatter-drawio/internal/drawio"
	"scatter-drawio/internal/features/preview"
	"scatter-drawio/internal/infra/csvrows"
	"scatter-drawio/internal/infra/fs"
	logging "scatter-drawio/internal/infra/log"
	"scatter-drawio/internal/scatter"
)

// Options describes one conversion.
type Options struct {
	Input          string
	Output         string
	Preview        string // optional PNG path
	PreviewOptions preview.Options
	Canvas         scatter.Canvas
	Delimiter      rune
	Now            func() time.Time
}

// OptionsFromConfig maps a loaded run configuration onto converter options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	d, err := cfg.DelimiterRune()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Input:          cfg.Input,
		Output:         cfg.Output,
		Preview:        cfg.Preview,
		PreviewOptions: preview.Options{Scale: cfg.PreviewScale, FontPath: cfg.PreviewFont},
		Canvas:         cfg.Canvas(),
		Delimiter:      d,
	}, nil
}

// Result summarizes a finished conversion.
type Result struct {
	Output   string
	Preview  string
	Records  int
	Dropped  int
	Bounds   scatter.Bounds
	Duration time.Duration
}

// Run converts opts.Input into opts.Output.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	if err := opts.Canvas.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidCanvas, err)
	}

	f, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	doc, stats, err := Build(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Input, err)
	}

	var pngData []byte
	if opts.Preview != "" {
		pngData, err = preview.EncodePNG(doc, opts.PreviewOptions)
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := fs.WriteAtomic(opts.Output, func(w io.Writer) error {
		return drawio.Encode(w, doc)
	}); err != nil {
		return nil, err
	}
	logging.LogInfo("Diagram written",
		zap.String("output", opts.Output),
		zap.Int("elements", doc.Len()))

	res := &Result{
		Output:  opts.Output,
		Records: stats.Records,
		Dropped: stats.Dropped,
		Bounds:  stats.Bounds,
	}

	// the diagram is already in place; a preview that cannot be saved only warns
	if pngData != nil {
		if err := preview.Save(opts.Preview, pngData); err != nil {
			logging.LogWarn("Preview not saved", zap.String("path", opts.Preview), zap.Error(err))
		} else {
			res.Preview = opts.Preview
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

// Stats describes what Build accepted.
type Stats struct {
	Records int
	Dropped int
	Bounds  scatter.Bounds
}

// Build reads delimited rows from src and assembles the diagram in memory.
// It returns scatter.ErrEmptyInput when no row yields a record.
func Build(ctx context.Context, src io.Reader, opts Options) (*drawio.Document, Stats, error) {
	reader, err := csvrows.NewReader(src, opts.Delimiter)
	if errors.Is(err, csvrows.ErrNoHeader) {
		return nil, Stats{}, fmt.Errorf("%w: %v", scatter.ErrEmptyInput, err)
	}
	if err != nil {
		return nil, Stats{}, err
	}

	header := reader.Header()
	binding := scatter.BindColumns(header)
	logging.LogDebug("Columns bound",
		zap.Strings("header", header),
		zap.String("x", binding.X),
		zap.String("y", binding.Y),
		zap.String("label", binding.Label))

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	records, dropped := scatter.ExtractAll(rows, binding)
	if dropped > 0 {
		logging.LogDebug("Rows without numeric x/y skipped", zap.Int("dropped", dropped))
	}

	bounds, err := scatter.ComputeBounds(records)
	if err != nil {
		return nil, Stats{Dropped: dropped}, err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	doc, err := drawio.Assemble(records, bounds, opts.Canvas, now())
	if err != nil {
		return nil, Stats{}, err
	}

	logging.LogInfo("Scatterplot assembled",
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped),
		zap.Float64("min_x", bounds.MinX),
		zap.Float64("max_x", bounds.MaxX),
		zap.Float64("min_y", bounds.MinY),
		zap.Float64("max_y", bounds.MaxY))

	return doc, Stats{Records: len(records), Dropped: dropped, Bounds: bounds}, nil
}
