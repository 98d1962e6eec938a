package config

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/amyap6/Perceptrons/pkg/model"
	"github.com/amyap6/Perceptrons/pkg/optim"
	"github.com/amyap6/Perceptrons/pkg/stats"
)

const envPrefix = "linperc"

const (
	ModeZScore = "zscore"
	ModeLegacy = "legacy"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every tunable of the classifier and the ensemble. Environment
// variables are named LINPERC_<TAG>.
type Config struct {
	Algorithm        string  `envconfig:"ALGORITHM" default:"online" yaml:"algorithm"`
	ModelSelection   bool    `envconfig:"MODEL_SELECTION" default:"false" yaml:"model_selection"`
	Standardize      bool    `envconfig:"STANDARDIZE" default:"true" yaml:"standardize"`
	StandardizeMode  string  `envconfig:"STANDARDIZE_MODE" default:"zscore" yaml:"standardize_mode"`
	CenterDegenerate bool    `envconfig:"CENTER_DEGENERATE" default:"false" yaml:"center_degenerate"`
	Bias             bool    `envconfig:"BIAS" default:"true" yaml:"bias"`
	MaxEpochs        int     `envconfig:"MAX_EPOCHS" default:"1000" yaml:"max_epochs"`
	LearningRate     float64 `envconfig:"LEARNING_RATE" default:"1.0" yaml:"learning_rate"`
	RawTargets       bool    `envconfig:"RAW_TARGETS" default:"false" yaml:"raw_targets"`
	Seed             *int64  `envconfig:"SEED" yaml:"seed"`

	EnsembleSize int     `envconfig:"ENSEMBLE_SIZE" default:"50" yaml:"ensemble_size"`
	Proportion   float64 `envconfig:"PROPORTION" default:"0.5" yaml:"proportion"`

	LogLevel string `envconfig:"LOGLEVEL" default:"INFO" yaml:"log_level"`
}

// Load reads the environment and then, when path is not empty, overlays the
// YAML file at path. Keys present in the file win.
func Load(path string) (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: read environment")
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the YAML file at path onto cfg.
func (cfg *Config) LoadFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "config: read %s", path)
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return errors.Wrapf(err, "config: parse %s", path)
	}
	return nil
}

func (cfg Config) algorithm() (optim.Algorithm, error) {
	return optim.ParseAlgorithm(cfg.Algorithm)
}

func (cfg Config) mode() (stats.Mode, error) {
	switch strings.ToLower(cfg.StandardizeMode) {
	case ModeZScore, "":
		return stats.ZScore, nil
	case ModeLegacy:
		return stats.Legacy, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "standardize_mode %q", cfg.StandardizeMode)
}

func (cfg Config) Validate() error {
	if _, err := cfg.algorithm(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := cfg.mode(); err != nil {
		return err
	}
	if cfg.MaxEpochs <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "max_epochs %d", cfg.MaxEpochs)
	}
	if !(cfg.LearningRate > 0) {
		return errors.Wrapf(ErrInvalidConfig, "learning_rate %g", cfg.LearningRate)
	}
	if cfg.EnsembleSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "ensemble_size %d", cfg.EnsembleSize)
	}
	if !(cfg.Proportion > 0 && cfg.Proportion <= 1) {
		return errors.Wrapf(ErrInvalidConfig, "proportion %g", cfg.Proportion)
	}
	return nil
}

// ClassifierOptions translates cfg into LinearClassifier options. cfg must be valid.
func (cfg Config) ClassifierOptions() []model.Option {
	alg, _ := cfg.algorithm()
	mode, _ := cfg.mode()
	policy := stats.FailOnDegenerate
	if cfg.CenterDegenerate {
		policy = stats.CenterDegenerate
	}
	opts := []model.Option{
		model.WithAlgorithm(alg),
		model.WithModelSelection(cfg.ModelSelection),
		model.WithStandardize(cfg.Standardize),
		model.WithStandardizeMode(mode),
		model.WithDegeneratePolicy(policy),
		model.WithBias(cfg.Bias),
		model.WithMaxEpochs(cfg.MaxEpochs),
		model.WithLearningRate(cfg.LearningRate),
		model.WithRawTargets(cfg.RawTargets),
	}
	if cfg.Seed != nil {
		opts = append(opts, model.WithSeed(*cfg.Seed))
	}
	return opts
}

// EnsembleOptions translates cfg into BaggedEnsemble options. Members get the
// classifier options; their seeds come from the ensemble's random state.
func (cfg Config) EnsembleOptions() []model.EnsembleOption {
	opts := []model.EnsembleOption{
		model.WithSize(cfg.EnsembleSize),
		model.WithProportion(cfg.Proportion),
		model.WithMemberOptions(cfg.ClassifierOptions()...),
	}
	if cfg.Seed != nil {
		opts = append(opts, model.WithRandomState(*cfg.Seed))
	}
	return opts
}
