package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/videnhance/analysis"
	"github.com/opd-ai/videnhance/config"
	"github.com/opd-ai/videnhance/frame"
	"github.com/opd-ai/videnhance/pipeline"
)

// fileResult summarizes one enhanced file.
type fileResult struct {
	Input     string
	Output    string
	Snapshot  string
	Frames    uint64
	SceneCuts int
	Stats     pipeline.Stats
	Elapsed   time.Duration
}

// String returns a one-line report.
func (r *fileResult) String() string {
	s := fmt.Sprintf("%s -> %s: %d frames, %d scene cuts, %v (%s)",
		r.Input, r.Output, r.Frames, r.SceneCuts, r.Elapsed.Round(time.Millisecond), r.Stats)
	if r.Snapshot != "" {
		s += ", snapshot " + r.Snapshot
	}
	return s
}

// outputPath maps an input file to its output path in dir, keeping the
// compression suffix so compressed input yields compressed output.
func outputPath(input, dir, suffix string) string {
	base := filepath.Base(input)
	compressed := strings.HasSuffix(base, frame.CompressedSuffix)
	base = strings.TrimSuffix(base, frame.CompressedSuffix)

	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + suffix + ext
	if compressed {
		name += frame.CompressedSuffix
	}
	return filepath.Join(dir, name)
}

// snapshotPath returns the PNG path for an output file.
func snapshotPath(output string) string {
	base := strings.TrimSuffix(output, frame.CompressedSuffix)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}

// estimateFrames returns the total frame count of uncompressed inputs, or -1
// when any input is compressed and the count is unknown.
func estimateFrames(inputs []string, width, height int) int64 {
	frameSize := int64(frame.BufferSize(width, height))
	var total int64
	for _, in := range inputs {
		if strings.HasSuffix(in, frame.CompressedSuffix) {
			return -1
		}
		info, err := os.Stat(in)
		if err != nil {
			return -1
		}
		total += info.Size() / frameSize
	}
	return total
}

func newProgressBar(total int64, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Enhancing"),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// processAll enhances every input, at most cli.parallel at a time. The first
// error cancels the remaining files.
func processAll(ctx context.Context, cli *CLIConfig, cfg *config.Config, progressOut io.Writer) ([]*fileResult, error) {
	if err := os.MkdirAll(cli.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var bar *progressbar.ProgressBar
	if cli.progress {
		bar = newProgressBar(estimateFrames(cli.inputs, cli.width, cli.height), progressOut)
		defer bar.Finish()
	}

	results := make([]*fileResult, len(cli.inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cli.parallel)

	for i, input := range cli.inputs {
		i, input := i, input
		g.Go(func() error {
			r, err := processFile(ctx, input, cli, cfg, bar)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = r
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// processFile enhances one input file with its own pipeline.
func processFile(ctx context.Context, input string, cli *CLIConfig, cfg *config.Config, bar *progressbar.ProgressBar) (result *fileResult, err error) {
	start := time.Now()
	log := logrus.WithFields(logrus.Fields{
		"function": "processFile",
		"input":    input,
	})

	reader, err := frame.OpenReader(input, cli.width, cli.height)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	output := outputPath(input, cli.outputDir, cli.suffix)
	writer, err := frame.CreateWriter(output)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to finish %s: %w", output, cerr)
		}
	}()

	p := pipeline.New(cfg.Enhancement,
		pipeline.WithAnalyzer(analysis.NewQualityAnalyzer(&cfg.Analysis)),
		pipeline.WithSceneDetector(analysis.NewSceneChangeDetector(&cfg.Analysis)),
		pipeline.WithLogger(logrus.WithField("input", input)),
	)
	defer p.Release()

	result = &fileResult{Input: input, Output: output}
	var previous, last *frame.PixelBuffer

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		buf, err := reader.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if cli.sceneReset && p.DetectSceneChange(buf, previous) {
			p.Reset()
			result.SceneCuts++
			log.WithField("frame", reader.FramesRead()-1).Debug("Scene cut, stabilizer reset")
		}
		previous = buf

		var quality analysis.VideoQualityAnalysis
		if cli.analyze || cli.overlay || cli.auto {
			quality = p.AnalyzeQuality(buf)
		}
		if cli.auto {
			p.UpdateSettings(analysis.Recommend(quality, cfg.Enhancement))
		}
		if cli.analyze {
			log.WithFields(logrus.Fields{
				"frame":       reader.FramesRead() - 1,
				"noise":       quality.NoiseLevel,
				"sharpness":   quality.SharpnessScore,
				"brightness":  quality.BrightnessLevel,
				"contrast":    quality.ContrastLevel,
				"suggestions": quality.SuggestedEnhancements,
			}).Info("Frame quality")
		}

		out := p.Process(buf)
		if cli.overlay {
			if out == buf {
				out = out.Clone()
			}
			frame.DrawText(out, 0, 0, overlayLines(reader.FramesRead()-1, quality)...)
		}

		if err := writer.WriteFrame(out); err != nil {
			return nil, err
		}
		last = out

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if cli.snapshot && last != nil {
		path := snapshotPath(output)
		if err := writeSnapshot(path, last, cli.thumbWidth); err != nil {
			return nil, err
		}
		result.Snapshot = path
	}

	result.Frames = writer.FramesWritten()
	result.Stats = p.Stats()
	result.Elapsed = time.Since(start)

	log.WithFields(logrus.Fields{
		"output": output,
		"frames": result.Frames,
		"stats":  result.Stats.String(),
	}).Info("File enhanced")

	return result, nil
}

func overlayLines(index uint64, q analysis.VideoQualityAnalysis) []string {
	lines := []string{
		fmt.Sprintf("frame %d", index),
		fmt.Sprintf("noise %.3f  sharp %.3f", q.NoiseLevel, q.SharpnessScore),
		fmt.Sprintf("bright %.3f  contrast %.3f", q.BrightnessLevel, q.ContrastLevel),
	}
	if len(q.SuggestedEnhancements) > 0 {
		lines = append(lines, strings.Join(q.SuggestedEnhancements, " "))
	}
	return lines
}

func writeSnapshot(path string, buf *frame.PixelBuffer, maxWidth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := frame.WriteSnapshot(f, buf, maxWidth); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
