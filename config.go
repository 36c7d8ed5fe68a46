package imputation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unixpickle/essentials"
	"gopkg.in/yaml.v3"
)

// Config is the full option set for one training run.
// It is immutable for the duration of the run.
type Config struct {
	// TrainDir and ValDir hold one serialized series per
	// file; ModelDir receives the persisted models.
	TrainDir string `yaml:"trainDir"`
	ValDir   string `yaml:"valDir"`
	ModelDir string `yaml:"modelDir"`

	// HistoryPath, if non-empty, is a SQLite file that
	// receives the reported losses.
	HistoryPath string `yaml:"historyPath"`

	// ModelName determines the names of the persisted
	// model files.
	ModelName string `yaml:"modelName"`

	LearningRate float64 `yaml:"learningRate"`
	BatchSize    int     `yaml:"batchSize"`
	WindowLen    int     `yaml:"windowLen"`
	Epochs       int     `yaml:"epochs"`

	// Shuffle reorders the training file list at the start
	// of every epoch.
	Shuffle bool `yaml:"shuffle"`

	// Placeholder is substituted for missing entries in
	// corrupted batches before they reach a model.
	Placeholder float64 `yaml:"placeholder"`

	// LossWeight blends the partially adversarial
	// generator loss:
	//
	//     w*reconstruction + (1-w)*adversarial
	LossWeight float64 `yaml:"lossWeight"`

	// SaveDiscriminator also persists the discriminator at
	// the end of an adversarial run.
	SaveDiscriminator bool `yaml:"saveDiscriminator"`
}

// DefaultConfig returns the defaults for every option
// except the data and model directories.
func DefaultConfig() *Config {
	return &Config{
		ModelName:    "imputer",
		LearningRate: 0.001,
		BatchSize:    64,
		WindowLen:    24,
		Epochs:       5,
		Shuffle:      true,
		Placeholder:  0,
		LossWeight:   0.7,
	}
}

// LoadConfig reads a YAML configuration file on top of
// the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, essentials.AddCtx("load config", err)
	}
	conf := DefaultConfig()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, essentials.AddCtx("load config", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, essentials.AddCtx("load config", err)
	}
	return conf, nil
}

// Validate checks that every option is usable.
func (c *Config) Validate() error {
	switch {
	case c.TrainDir == "":
		return errors.New("missing trainDir")
	case c.ValDir == "":
		return errors.New("missing valDir")
	case c.ModelDir == "":
		return errors.New("missing modelDir")
	case c.ModelName == "":
		return errors.New("missing modelName")
	case c.LearningRate <= 0:
		return fmt.Errorf("invalid learningRate: %v", c.LearningRate)
	case c.BatchSize < 0:
		return fmt.Errorf("invalid batchSize: %d", c.BatchSize)
	case c.WindowLen <= 0:
		return fmt.Errorf("invalid windowLen: %d", c.WindowLen)
	case c.Epochs <= 0:
		return fmt.Errorf("invalid epochs: %d", c.Epochs)
	case c.LossWeight < 0 || c.LossWeight > 1:
		return fmt.Errorf("invalid lossWeight: %v", c.LossWeight)
	}
	return nil
}

// ModelPath is the file the trained model (or generator)
// is persisted to.
func (c *Config) ModelPath() string {
	return filepath.Join(c.ModelDir, c.ModelName+".bin")
}

// DiscriminatorPath is the file the discriminator is
// persisted to when SaveDiscriminator is set.
func (c *Config) DiscriminatorPath() string {
	return filepath.Join(c.ModelDir, c.ModelName+"_discriminator.bin")
}
