package ascent

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const demoScenario = `name = "demo"
log_interval = 1

[planet]
name = "Earth"

[engine]
name = "Titan"

[rocket]
engines = 1
payload = 10
tank = 30
ratio = 0.1

[sweep.tank]
min = 5
max = 60
step = 5

[sweep.payload]
min = 0
max = 20
step = 2

[settings]
gravity = "variable"
drag = true
step = 0.05
maxtime = 900
target = "delta-v"

[[stage]]
name = "booster"
dry = 2
fuel = 12
thrust = 100
isp = 250
mode = "parallel"

[[stage]]
name = "core"
dry = 3
fuel = 8.5
thrust = 50
isp = 300
enabled = true
`

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, demoScenario))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "demo" || s.LogInterval != 1 {
		t.Fatalf("scenario header misread: %+v", s)
	}
	if !s.Planet.Equals(Earth) {
		t.Fatalf("planet misread: %s", s.Planet)
	}
	if s.Params.Engine.Name != "Titan" || s.Params.EngineCount != 1 {
		t.Fatalf("engine misread: %s ×%d", s.Params.Engine, s.Params.EngineCount)
	}
	if !scalar.EqualWithinAbs(s.Params.TankMass, 30, 1e-12) || !scalar.EqualWithinAbs(s.Params.TankRatio, 0.1, 1e-12) {
		t.Fatalf("rocket misread: %+v", s.Params)
	}
	if s.Params.TankSweep != (SweepRange{5, 60, 5}) || s.Params.PayloadSweep != (SweepRange{0, 20, 2}) {
		t.Fatalf("sweep ranges misread: %+v", s.Params)
	}
	if s.Settings.GravityModel != VariableGravity || !s.Settings.Drag || s.Settings.Target != TargetDeltaV {
		t.Fatalf("settings misread: %+v", s.Settings)
	}
	if !scalar.EqualWithinAbs(s.Settings.TimeStep, 0.05, 1e-12) || !scalar.EqualWithinAbs(s.Settings.MaxTime, 900, 1e-12) {
		t.Fatalf("time settings misread: %+v", s.Settings)
	}
	if len(s.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(s.Stages))
	}
	if s.Stages[0].Mode != Parallel || s.Stages[0].Name != "booster" || !s.Stages[0].Enabled {
		t.Fatalf("booster misread: %+v", s.Stages[0])
	}
	if s.Stages[1].Mode != Serial || !scalar.EqualWithinAbs(s.Stages[1].FuelMass, 8.5, 1e-12) {
		t.Fatalf("core misread: %+v", s.Stages[1])
	}
}

func TestLoadScenarioCustomBodies(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, `
[planet]
gravity = 5.0
radius = 100000
atmosphere = 10000

[engine]
thrust = 40
isp = 200
mass = 2

[rocket]
engines = 2
payload = 1
tank = 10
ratio = 0.2
`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Planet.Name != "Custom" || s.Planet.Gravity != 5.0 || s.Planet.Radius != 100000 {
		t.Fatalf("custom planet misread: %+v", s.Planet)
	}
	if s.Params.Engine.Name != "Generic" || s.Params.Engine.Thrust != 40 {
		t.Fatalf("custom engine misread: %+v", s.Params.Engine)
	}
	// Defaults kick in for the omitted settings.
	if s.Settings.TimeStep != 0.1 || s.Settings.MaxTime != 600 {
		t.Fatalf("settings defaults missing: %+v", s.Settings)
	}
	if s.Settings.GravityModel != ConstantGravity || s.Settings.Target != TargetMaxHeight {
		t.Fatalf("enum defaults missing: %+v", s.Settings)
	}
}

func TestLoadScenarioValidation(t *testing.T) {
	cases := map[string]string{
		"negative payload": `
[planet]
name = "Earth"
[engine]
name = "Hawk"
[rocket]
engines = 1
payload = -5
tank = 10
ratio = 0.1`,
		"bad ratio": `
[planet]
name = "Earth"
[engine]
name = "Hawk"
[rocket]
engines = 1
payload = 5
tank = 10
ratio = 1.5`,
		"thrust without isp": `
[planet]
name = "Earth"
[engine]
thrust = 100
isp = 0
mass = 1
[rocket]
engines = 1
payload = 5
tank = 10
ratio = 0.1`,
		"unknown planet": `
[planet]
name = "Krypton"
[engine]
name = "Hawk"
[rocket]
engines = 1
payload = 5
tank = 10
ratio = 0.1`,
		"negative stage mass": `
[planet]
name = "Earth"
[engine]
name = "Hawk"
[rocket]
engines = 1
payload = 5
tank = 10
ratio = 0.1
[[stage]]
dry = -1
fuel = 5
thrust = 10
isp = 200`,
	}
	for name, contents := range cases {
		if _, err := LoadScenario(writeScenario(t, contents)); err == nil {
			t.Fatalf("%s: expected a validation error", name)
		}
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenario("/nonexistent/scenario.toml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
