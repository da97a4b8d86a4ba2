package service

import (
	"upvotes_analyzer/internal/analyzer"
	"upvotes_analyzer/internal/modules/config"
	"upvotes_analyzer/pkg/logger"
)

func NewEngine(cfg *config.Config) (Engine, error) {
	mode, err := analyzer.ParseMode(cfg.Analyzer.Mode)
	if err != nil {
		return nil, err
	}

	switch mode {
	case analyzer.ModeLinear, analyzer.ModeExhaustive:
		return analyzer.New(analyzer.Options{
			Mode:    mode,
			Workers: cfg.Analyzer.Workers,
		}), nil

	case analyzer.ModeSliding:
		fallthrough
	default:
		// sliding однопроходный, воркеры ему не нужны
		if cfg.Analyzer.Workers > 1 {
			logger.Info("analyzer: workers=%d ignored in %s mode", cfg.Analyzer.Workers, mode)
		}
		return analyzer.New(analyzer.Options{Mode: analyzer.ModeSliding}), nil
	}
}
