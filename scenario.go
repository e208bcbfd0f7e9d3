package ascent

import (
	"fmt"

	"github.com/spf13/viper"
)

// Scenario is a fully parsed TOML scenario: one file drives a launch, the
// sweeps and the staging accountant alike.
type Scenario struct {
	Name        string
	Planet      Planet
	Params      RocketParams
	Settings    SimulationSettings
	LogInterval float64 // seconds between telemetry samples, 0 disables logging
	Stages      []RocketStage
}

// stageConf mirrors a [[stage]] table.
type stageConf struct {
	Name    string  `mapstructure:"name"`
	Dry     float64 `mapstructure:"dry"`
	Fuel    float64 `mapstructure:"fuel"`
	Thrust  float64 `mapstructure:"thrust"`
	Isp     float64 `mapstructure:"isp"`
	Mode    string  `mapstructure:"mode"`
	Enabled *bool   `mapstructure:"enabled"`
}

// LoadScenario reads and validates a scenario TOML file.
//
// The numeric core itself never validates: a scenario file is the boundary
// where nonsensical inputs (negative masses, zero Isp with thrust) are turned
// into errors instead of undefined behavior.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read scenario: %s", err)
	}

	s := &Scenario{Name: v.GetString("name")}

	// Planet: by catalog name, with field-level overrides for custom bodies.
	if name := v.GetString("planet.name"); name != "" {
		planet, err := PlanetFromString(name)
		if err != nil {
			return nil, err
		}
		s.Planet = planet
	} else {
		s.Planet = Planet{Name: "Custom"}
	}
	if v.IsSet("planet.gravity") {
		s.Planet.Gravity = v.GetFloat64("planet.gravity")
	}
	if v.IsSet("planet.radius") {
		s.Planet.Radius = v.GetFloat64("planet.radius")
	}
	if v.IsSet("planet.atmosphere") {
		s.Planet.AtmosphereAlt = v.GetFloat64("planet.atmosphere")
	}
	if s.Planet.Radius <= 0 {
		return nil, fmt.Errorf("planet radius must be positive, got %f", s.Planet.Radius)
	}
	if s.Planet.Gravity < 0 {
		return nil, fmt.Errorf("planet gravity must not be negative, got %f", s.Planet.Gravity)
	}

	// Engine: by catalog name or fully custom.
	if name := v.GetString("engine.name"); name != "" {
		eng, err := EngineFromString(name)
		if err != nil {
			return nil, err
		}
		s.Params.Engine = eng
	} else {
		s.Params.Engine = NewGenericEngine(v.GetFloat64("engine.thrust"), v.GetFloat64("engine.isp"), v.GetFloat64("engine.mass"))
	}
	if s.Params.Engine.Thrust < 0 {
		return nil, fmt.Errorf("engine thrust must not be negative, got %f", s.Params.Engine.Thrust)
	}
	if s.Params.Engine.Thrust > 0 && s.Params.Engine.Isp <= 0 {
		return nil, fmt.Errorf("engine isp must be positive when thrust is, got %f", s.Params.Engine.Isp)
	}

	s.Params.EngineCount = v.GetInt("rocket.engines")
	s.Params.Payload = v.GetFloat64("rocket.payload")
	s.Params.TankMass = v.GetFloat64("rocket.tank")
	s.Params.TankRatio = v.GetFloat64("rocket.ratio")
	if s.Params.Payload < 0 || s.Params.TankMass < 0 {
		return nil, fmt.Errorf("masses must not be negative")
	}
	if s.Params.TankRatio <= 0 || s.Params.TankRatio >= 1 {
		return nil, fmt.Errorf("tank dry/wet ratio must be in (0,1), got %f", s.Params.TankRatio)
	}

	s.Params.TankSweep = SweepRange{v.GetFloat64("sweep.tank.min"), v.GetFloat64("sweep.tank.max"), v.GetFloat64("sweep.tank.step")}
	s.Params.PayloadSweep = SweepRange{v.GetFloat64("sweep.payload.min"), v.GetFloat64("sweep.payload.max"), v.GetFloat64("sweep.payload.step")}

	grav, err := ParseGravityModel(v.GetString("settings.gravity"))
	if err != nil {
		return nil, err
	}
	target, err := ParseOptimizationTarget(v.GetString("settings.target"))
	if err != nil {
		return nil, err
	}
	s.Settings = SimulationSettings{
		GravityModel: grav,
		Drag:         v.GetBool("settings.drag"),
		TimeStep:     v.GetFloat64("settings.step"),
		MaxTime:      v.GetFloat64("settings.maxtime"),
		Target:       target,
	}
	if s.Settings.TimeStep <= 0 {
		s.Settings.TimeStep = 0.1
	}
	if s.Settings.MaxTime <= 0 {
		s.Settings.MaxTime = 600
	}
	s.LogInterval = v.GetFloat64("log_interval")

	var stageConfs []stageConf
	if err := v.UnmarshalKey("stage", &stageConfs); err != nil {
		return nil, fmt.Errorf("could not parse stages: %s", err)
	}
	for i, sc := range stageConfs {
		mode, err := ParseStageMode(sc.Mode)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %s", i, err)
		}
		if sc.Dry < 0 || sc.Fuel < 0 {
			return nil, fmt.Errorf("stage %d: masses must not be negative", i)
		}
		if sc.Thrust > 0 && sc.Isp <= 0 {
			return nil, fmt.Errorf("stage %d: isp must be positive when thrust is", i)
		}
		enabled := true
		if sc.Enabled != nil {
			enabled = *sc.Enabled
		}
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("stage-%d", i+1)
		}
		s.Stages = append(s.Stages, RocketStage{
			Name:     name,
			DryMass:  sc.Dry,
			FuelMass: sc.Fuel,
			Thrust:   sc.Thrust,
			Isp:      sc.Isp,
			Enabled:  enabled,
			Mode:     mode,
		})
	}
	return s, nil
}
