// Package config loads the YAML settings of the fixture tooling.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v4/ring"
	"gopkg.in/yaml.v3"

	"logproof-fixtures/zq"
)

// RingConfig selects the coefficient ring Z_q. Preset wins over Modulus; with
// neither set the ring is DefaultPreset.
type RingConfig struct {
	Preset  string `yaml:"preset"`
	Modulus string `yaml:"modulus"`
	Limbs   int    `yaml:"limbs"`
}

// LattigoConfig describes the NTT ring used to generate and check problems.
type LattigoConfig struct {
	LogN   int      `yaml:"log-n"`
	Moduli []uint64 `yaml:"moduli"`
}

type Config struct {
	Ring             RingConfig    `yaml:"ring"`
	PlaintextModulus uint64        `yaml:"plaintext-modulus"`
	DeltaLimbs       int           `yaml:"delta-limbs"`
	Lattigo          LattigoConfig `yaml:"lattigo"`
	LogLevel         string        `yaml:"loglevel"`

	sourceFile string
}

// DefaultPreset is the coefficient ring used when the ring section is empty.
const DefaultPreset = "ristretto"

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		PlaintextModulus: 1024,
		DeltaLimbs:       4,
		Lattigo:          LattigoConfig{LogN: 4, Moduli: []uint64{12289}},
		LogLevel:         "info",
	}
}

// Load reads path over the defaults. A leading ~ is expanded and unknown
// keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, err
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer file.Close()
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, errors.Wrap(err, "error parsing YAML in config file at "+path)
	}
	cfg.sourceFile = path
	return cfg, cfg.Validate()
}

// Source returns the file the config was read from, if any.
func (c Config) Source() string { return c.sourceFile }

func (c Config) Validate() error {
	if c.Ring.Preset == "" && c.Ring.Modulus != "" && (c.Ring.Limbs < 1 || c.Ring.Limbs > zq.MaxLimbs) {
		return fmt.Errorf("ring.limbs=%d outside [1,%d]", c.Ring.Limbs, zq.MaxLimbs)
	}
	if c.DeltaLimbs < 1 || c.DeltaLimbs > zq.MaxLimbs {
		return fmt.Errorf("delta-limbs=%d outside [1,%d]", c.DeltaLimbs, zq.MaxLimbs)
	}
	if c.Lattigo.LogN < 1 || c.Lattigo.LogN > 17 {
		return fmt.Errorf("lattigo.log-n=%d outside [1,17]", c.Lattigo.LogN)
	}
	if len(c.Lattigo.Moduli) == 0 {
		return errors.New("lattigo.moduli must not be empty")
	}
	return nil
}

// CoefficientRing builds the configured Z_q.
func (c Config) CoefficientRing() (*zq.Ring, error) {
	switch {
	case c.Ring.Preset != "":
		return zq.Preset(c.Ring.Preset)
	case c.Ring.Modulus == "":
		return zq.Preset(DefaultPreset)
	}
	return zq.RingFromDecimal(c.Ring.Modulus, c.Ring.Limbs)
}

// LattigoRing builds the configured NTT ring of degree 2^LogN.
func (c Config) LattigoRing() (*ring.Ring, error) {
	return ring.NewRing(1<<c.Lattigo.LogN, c.Lattigo.Moduli)
}
