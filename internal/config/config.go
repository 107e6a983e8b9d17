package config

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Mode              string `yaml:"mode"` // "sentence" or "window"
	SentencesPerChunk int    `yaml:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences"`
	WindowChars       int    `yaml:"window_chars"`
}

// ScorerConfig selects the relevance scoring strategy.
type ScorerConfig struct {
	Type string `yaml:"type"` // "overlap" or "bm25"
}

// DepthThreshold maps a complexity signal ceiling to a recursion depth.
// A query whose signal is <= MaxComplexity routes to Depth; signals above
// every threshold route to the engine's max depth.
type DepthThreshold struct {
	MaxComplexity int `yaml:"max_complexity"`
	Depth         int `yaml:"depth"`
}

// RouterConfig configures the complexity router.
type RouterConfig struct {
	LongTokenChars  int              `yaml:"long_token_chars"`
	AnalyticalBonus int              `yaml:"analytical_bonus"`
	DepthThresholds []DepthThreshold `yaml:"depth_thresholds"`
}

// EngineConfig configures the recursive retrieval loop.
type EngineConfig struct {
	MaxDepth         int     `yaml:"max_depth"`
	TopK             []int   `yaml:"top_k"` // per-pass keep counts
	EarlyStopEpsilon float64 `yaml:"early_stop_epsilon"`
	RefineFromTop    int     `yaml:"refine_from_top"` // chunks feeding the sub-query
}

// SummarizerConfig configures answer rendering.
type SummarizerConfig struct {
	MaxSentences   int     `yaml:"max_sentences"`
	RelevanceFloor float64 `yaml:"relevance_floor"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Scorer     ScorerConfig     `yaml:"scorer"`
	Router     RouterConfig     `yaml:"router"`
	Engine     EngineConfig     `yaml:"engine"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Load reads a config from a specified path. A missing file is an error:
// the caller named it, so absence is most likely a typo. LoadDefault is
// the lenient discovery path.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/recurag/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "recurag", "config.yaml"), nil
}

// Default returns the documented default configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Chunker: ChunkerConfig{Mode: "sentence", SentencesPerChunk: 5, OverlapSentences: 1, WindowChars: 1600},
		Scorer:  ScorerConfig{Type: "overlap"},
		Router: RouterConfig{
			LongTokenChars:  6,
			AnalyticalBonus: 8,
			DepthThresholds: []DepthThreshold{
				{MaxComplexity: 12, Depth: 1},
				{MaxComplexity: 24, Depth: 2},
			},
		},
		Engine:     EngineConfig{MaxDepth: 3, TopK: []int{8, 4, 2}, EarlyStopEpsilon: 1e-3, RefineFromTop: 3},
		Summarizer: SummarizerConfig{MaxSentences: 4, RelevanceFloor: 0.05},
		Logging:    LoggingConfig{Level: "info", Pretty: true},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Chunker.Mode == "" {
		cfg.Chunker.Mode = def.Chunker.Mode
	}
	if cfg.Chunker.SentencesPerChunk == 0 {
		cfg.Chunker.SentencesPerChunk = def.Chunker.SentencesPerChunk
	}
	if cfg.Chunker.WindowChars == 0 {
		cfg.Chunker.WindowChars = def.Chunker.WindowChars
	}
	if cfg.Scorer.Type == "" {
		cfg.Scorer.Type = def.Scorer.Type
	}
	if cfg.Router.LongTokenChars == 0 {
		cfg.Router.LongTokenChars = def.Router.LongTokenChars
	}
	if cfg.Router.AnalyticalBonus == 0 {
		cfg.Router.AnalyticalBonus = def.Router.AnalyticalBonus
	}
	if len(cfg.Router.DepthThresholds) == 0 {
		cfg.Router.DepthThresholds = def.Router.DepthThresholds
	}
	// Thresholds are evaluated in ascending signal order. The router
	// additionally corrects tables whose depths are not monotone.
	sort.Slice(cfg.Router.DepthThresholds, func(i, j int) bool {
		return cfg.Router.DepthThresholds[i].MaxComplexity < cfg.Router.DepthThresholds[j].MaxComplexity
	})
	if cfg.Engine.MaxDepth == 0 {
		cfg.Engine.MaxDepth = def.Engine.MaxDepth
	}
	if len(cfg.Engine.TopK) == 0 {
		cfg.Engine.TopK = def.Engine.TopK
	}
	if cfg.Engine.EarlyStopEpsilon == 0 {
		cfg.Engine.EarlyStopEpsilon = def.Engine.EarlyStopEpsilon
	}
	if cfg.Engine.RefineFromTop == 0 {
		cfg.Engine.RefineFromTop = def.Engine.RefineFromTop
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = def.Summarizer.MaxSentences
	}
	if cfg.Summarizer.RelevanceFloor == 0 {
		cfg.Summarizer.RelevanceFloor = def.Summarizer.RelevanceFloor
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}
