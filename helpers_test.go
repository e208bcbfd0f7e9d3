package ascent

import "testing"

func assertPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic")
		}
	}()
	f()
}

// titanParams is the reference single-launch configuration used across tests.
func titanParams() RocketParams {
	return RocketParams{
		Engine:      NewGenericEngine(400, 240, 12),
		EngineCount: 1,
		Payload:     10,
		TankMass:    30,
		TankRatio:   0.1,
	}
}

func vacuumSettings() SimulationSettings {
	return SimulationSettings{
		GravityModel: ConstantGravity,
		Drag:         false,
		TimeStep:     0.1,
		MaxTime:      600,
		Target:       TargetMaxHeight,
	}
}
