package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"bookvoice/internal/audioinfo"
	"bookvoice/internal/config"
	"bookvoice/internal/fileutil"
	"bookvoice/internal/logging"
	"bookvoice/internal/markdown"
	"bookvoice/internal/merge"
	"bookvoice/internal/riffwav"
	"bookvoice/internal/ttscache"
)

// Synthesizer converts one text chunk into an audio fragment.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (merge.Fragment, error)
}

// Options bundles the collaborators a Pipeline needs. Summarizer and Cache
// are optional; leaving them nil disables code summaries and caching.
type Options struct {
	Config      *config.Config
	Logger      *slog.Logger
	Synthesizer Synthesizer
	Summarizer  markdown.Summarizer
	Cache       *ttscache.Store
}

// Pipeline narrates markdown documents into audio files.
type Pipeline struct {
	cfg        *config.Config
	logger     *slog.Logger
	synth      Synthesizer
	summarizer markdown.Summarizer
	cache      *ttscache.Store
}

// DocumentResult records the outcome for one narrated document.
type DocumentResult struct {
	Path         string
	Title        string
	OutputPath   string
	Strategy     merge.Strategy
	Chunks       int
	CachedChunks int
	FellBack     bool
	Duration     time.Duration
}

// RunSummary aggregates the outcomes of one pipeline run.
type RunSummary struct {
	RunID     string
	Results   []DocumentResult
	Failures  int
	Fallbacks int
}

// New validates options and constructs a Pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, errors.New("pipeline: config required")
	}
	if opts.Synthesizer == nil {
		return nil, errors.New("pipeline: synthesizer required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:        opts.Config,
		logger:     logger,
		synth:      opts.Synthesizer,
		summarizer: opts.Summarizer,
		cache:      opts.Cache,
	}, nil
}

// Run narrates each document in order. Per-document failures are logged and
// counted; Run itself fails only when no work can start at all.
func (p *Pipeline) Run(ctx context.Context, docs []string) (*RunSummary, error) {
	if len(docs) == 0 {
		return nil, errors.New("pipeline: no documents given")
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.OutputDir, ".bookvoice.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("pipeline: acquire output lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("pipeline: another run is already writing to %s", p.cfg.Paths.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	summary := &RunSummary{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, p.logger)

	p.pruneCache(ctx, logger)

	logger.Info("run started", slog.Int("documents", len(docs)))
	for _, doc := range docs {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		result, err := p.processDocument(ctx, doc)
		if err != nil {
			summary.Failures++
			logger.Error("document failed",
				slog.String(logging.FieldDocument, filepath.Base(doc)),
				logging.Error(err))
			continue
		}
		if result.FellBack {
			summary.Fallbacks++
		}
		summary.Results = append(summary.Results, *result)
	}

	logger.Info("run finished",
		slog.Int("succeeded", len(summary.Results)),
		slog.Int("failed", summary.Failures),
		slog.Int("fallbacks", summary.Fallbacks))
	return summary, nil
}

func (p *Pipeline) processDocument(ctx context.Context, path string) (*DocumentResult, error) {
	ctx = logging.WithDocument(ctx, filepath.Base(path))
	logger := logging.WithContext(ctx, p.logger)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	text, err := markdown.ExpandIncludes(path, string(raw))
	if err != nil {
		return nil, fmt.Errorf("expand includes: %w", err)
	}

	if p.summarizer != nil && p.cfg.Narration.CodeSummaries {
		summarized, replaced, err := markdown.ReplaceCodeBlocks(ctx, p.summarizer, text)
		if err != nil {
			return nil, fmt.Errorf("summarize code blocks: %w", err)
		}
		if replaced > 0 {
			logger.Info("code blocks summarized", slog.Int("blocks", replaced))
		}
		text = summarized
	}

	clean := markdown.Sanitize(text)
	if clean == "" {
		return nil, errors.New("document empty after sanitizing")
	}

	chunks := markdown.SplitChunks(clean, p.cfg.Narration.ChunkChars)
	logger.Info("document chunked",
		slog.Int("chunks", len(chunks)),
		slog.Int("characters", len(clean)))

	result := &DocumentResult{
		Path:   path,
		Title:  DisplayTitle(fileutil.Stem(path)),
		Chunks: len(chunks),
	}

	fragments := make([]merge.Fragment, 0, len(chunks))
	for i, chunk := range chunks {
		fragment, cached, err := p.synthesizeChunk(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("synthesize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if cached {
			result.CachedChunks++
		}
		fragments = append(fragments, fragment)
	}

	merged := merge.Fragments(fragments)
	result.Strategy = merged.Strategy
	if merged.FallbackErr != nil {
		result.FellBack = true
		logger.Warn("structural merge failed, fragments concatenated byte-wise",
			logging.Error(merged.FallbackErr))
	}
	if merged.Unmergeable {
		logger.Warn("unrecognized audio type, fragments concatenated byte-wise",
			slog.String("mime", merged.MIME))
	}

	p.auditSilence(logger, merged)

	if duration, err := audioinfo.Duration(merged.Bytes, merged.Extension); err != nil {
		logger.Warn("duration probe failed", logging.Error(err))
	} else {
		result.Duration = duration
	}

	outPath := filepath.Join(p.cfg.Paths.OutputDir, fileutil.Stem(path)+merged.Extension)
	if err := fileutil.WriteFileAtomic(outPath, merged.Bytes, 0o644); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	result.OutputPath = outPath

	logger.Info("document narrated",
		slog.String("output", outPath),
		slog.String("strategy", string(merged.Strategy)),
		slog.Int("bytes", len(merged.Bytes)),
		slog.Duration("duration", result.Duration))
	return result, nil
}

// synthesizeChunk consults the cache before calling the synthesizer, and
// stores fresh results back. Cache errors degrade to plain synthesis.
func (p *Pipeline) synthesizeChunk(ctx context.Context, chunk string) (merge.Fragment, bool, error) {
	voice := p.cfg.Narration.Voice
	model := p.cfg.Gemini.TTSModel
	useCache := p.cache != nil && p.cfg.Cache.Enabled

	var key string
	if useCache {
		key = ttscache.Key(model, voice, chunk)
		entry, err := p.cache.Get(ctx, key)
		if err != nil {
			logging.WithContext(ctx, p.logger).Warn("cache lookup failed", logging.Error(err))
		} else if entry != nil {
			return merge.Fragment{Bytes: entry.Audio, MIME: entry.MIME}, true, nil
		}
	}

	fragment, err := p.synth.Synthesize(ctx, chunk, voice)
	if err != nil {
		return merge.Fragment{}, false, err
	}

	if useCache {
		if err := p.cache.Put(ctx, key, model, voice, fragment.MIME, fragment.Bytes); err != nil {
			logging.WithContext(ctx, p.logger).Warn("cache store failed", logging.Error(err))
		}
	}
	return fragment, false, nil
}

func (p *Pipeline) auditSilence(logger *slog.Logger, merged merge.Result) {
	threshold := p.cfg.Narration.SilenceWarnRatio
	if threshold <= 0 || merged.Extension != ".wav" || merged.Strategy == merge.StrategyConcat {
		return
	}
	ratio, err := riffwav.SilenceRatio(merged.Bytes)
	if err != nil {
		logger.Warn("silence ratio unavailable", logging.Error(err))
		return
	}
	if ratio >= threshold {
		logger.Warn("merged audio is mostly silence",
			slog.Float64("ratio", ratio),
			slog.Float64("threshold", threshold))
	}
}

func (p *Pipeline) pruneCache(ctx context.Context, logger *slog.Logger) {
	if p.cache == nil || !p.cfg.Cache.Enabled || p.cfg.Cache.MaxAgeDays <= 0 {
		return
	}
	maxAge := time.Duration(p.cfg.Cache.MaxAgeDays) * 24 * time.Hour
	removed, err := p.cache.Prune(ctx, maxAge)
	if err != nil {
		logger.Warn("cache prune failed", logging.Error(err))
		return
	}
	if removed > 0 {
		logger.Info("cache pruned", slog.Int64("removed", removed))
	}
}
