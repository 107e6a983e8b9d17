package cli

import (
	"fmt"

	"recurag/internal/chunker"
	"recurag/internal/config"
	"recurag/internal/domain"
	"recurag/internal/engine"
	"recurag/internal/loader"
	"recurag/internal/logger"
	"recurag/internal/router"
	"recurag/internal/scorer"
	"recurag/internal/service"
	"recurag/internal/summarizer"
)

// assemble builds the QA service from configuration and loads the context
// files into the corpus.
func assemble(cfgPath string, contextPaths []string) (*service.Service, error) {
	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	var ch domain.Chunker
	switch cfg.Chunker.Mode {
	case "sentence", "":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	case "window":
		ch = chunker.NewWindowChunker(cfg.Chunker.WindowChars)
	default:
		return nil, fmt.Errorf("unknown chunker mode: %s", cfg.Chunker.Mode)
	}

	var sc domain.Scorer
	switch cfg.Scorer.Type {
	case "overlap", "":
		sc = scorer.NewOverlapScorer()
	case "bm25":
		sc = scorer.NewBM25Scorer()
	default:
		return nil, fmt.Errorf("unknown scorer: %s", cfg.Scorer.Type)
	}

	rt := router.New(cfg.Router, cfg.Engine.MaxDepth)
	eng := engine.New(sc, cfg.Engine, log)
	sum := summarizer.NewExtractive(sc, cfg.Summarizer)
	svc := service.New(ch, sc, rt, eng, sum, log)

	documents, err := loader.Load(contextPaths)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}
	if err := svc.BuildCorpus(documents); err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}
	return svc, nil
}
