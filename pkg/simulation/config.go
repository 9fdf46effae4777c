package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/swarm"
)

//go:embed config.schema.json
var embeddedSchema []byte

const embeddedSchemaName = "config.schema.json"

// ErrInvalidConfig is returned when a configuration passes the schema but cannot run.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`
	WorldDepth  float64 `json:"worldDepth"`

	// Population, the reference agent included
	FireflyCount int    `json:"fireflyCount"`
	Seed         uint64 `json:"seed"`

	// Random wander velocity, per axis
	VelocityMin float64 `json:"velocityMin"`
	VelocityMax float64 `json:"velocityMax"`

	// Influence rule
	InfluenceRule string  `json:"influenceRule"` // "pairwise" or "centroid"
	ForceConstant float64 `json:"forceConstant"`
	Epsilon       float64 `json:"epsilon"`

	// Reference agent
	ReferenceMode    string  `json:"referenceMode"` // "beacon" or "average"
	BeaconBrightness float64 `json:"beaconBrightness"`

	// Rendering
	CircleRadius float64 `json:"circleRadius"`
	DisplayStats bool    `json:"displayStats"`
	DisplayPanel bool    `json:"displayPanel"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:       500,
		WorldHeight:      500,
		WorldDepth:       500,
		FireflyCount:     101,
		Seed:             201,
		VelocityMin:      -10.5,
		VelocityMax:      10.5,
		InfluenceRule:    swarm.RulePairwise,
		ForceConstant:    swarm.DefaultForceConstant,
		Epsilon:          swarm.DefaultEpsilon,
		ReferenceMode:    string(swarm.ReferenceBeacon),
		BeaconBrightness: 100,
		CircleRadius:     4,
		DisplayStats:     true,
		DisplayPanel:     true,
	}
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
// An empty schemaFile uses the schema compiled into the binary.
// Fields missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := compileSchema(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compileSchema(schemaFile string) (*jsonschema.Schema, error) {
	if schemaFile != "" {
		return jsonschema.Compile(schemaFile)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(embeddedSchemaName, bytes.NewReader(embeddedSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(embeddedSchemaName)
}

// Validate checks the rules a JSON schema cannot express.
func (c *Config) Validate() error {
	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0 || c.WorldDepth <= 0:
		return fmt.Errorf("%w: world dimensions must be positive, got %gx%gx%g",
			ErrInvalidConfig, c.WorldWidth, c.WorldHeight, c.WorldDepth)
	case c.FireflyCount < swarm.MinAgents:
		return fmt.Errorf("%w: fireflyCount must be at least %d, got %d",
			ErrInvalidConfig, swarm.MinAgents, c.FireflyCount)
	case c.VelocityMin >= c.VelocityMax:
		return fmt.Errorf("%w: velocityMin (%g) must be below velocityMax (%g)",
			ErrInvalidConfig, c.VelocityMin, c.VelocityMax)
	case c.BeaconBrightness < 0 || c.BeaconBrightness > 100:
		return fmt.Errorf("%w: beaconBrightness must be in [0,100], got %g",
			ErrInvalidConfig, c.BeaconBrightness)
	case c.Epsilon < 0:
		return fmt.Errorf("%w: epsilon must not be negative", ErrInvalidConfig)
	}
	if _, err := swarm.NewRule(c.InfluenceRule); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := swarm.ParseReferenceMode(c.ReferenceMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Bounds returns the simulation volume.
func (c *Config) Bounds() swarm.Bounds {
	return swarm.Bounds{Width: c.WorldWidth, Height: c.WorldHeight, Depth: c.WorldDepth}
}

// Settings returns the initial population description.
func (c *Config) Settings() swarm.Settings {
	return swarm.Settings{
		Bounds:           c.Bounds(),
		Count:            c.FireflyCount,
		Mode:             swarm.ReferenceMode(c.ReferenceMode),
		BeaconBrightness: c.BeaconBrightness,
	}
}

// Params returns the influence rule tuning.
func (c *Config) Params() swarm.Params {
	return swarm.Params{ForceConstant: c.ForceConstant, Epsilon: c.Epsilon}
}
