package ascent

import (
	"context"
	"math"
	"runtime"
	"sync"

	kitlog "github.com/go-kit/kit/log"
)

/* Orchestration over the single-launch simulator. Every grid point is an
independent pure computation, so the 2D sweep fans out over a worker pool. */

// SweepMode selects which design variable a 1D optimization sweeps.
type SweepMode uint8

const (
	// SweepTankMass varies the wet tank mass, payload fixed.
	SweepTankMass SweepMode = iota
	// SweepPayload varies the payload mass, tank mass fixed.
	SweepPayload
)

func (m SweepMode) String() string {
	switch m {
	case SweepTankMass:
		return "fuel"
	case SweepPayload:
		return "payload"
	}
	panic("cannot stringify unknown sweep mode")
}

// sweepStepFloor bounds the work of a sweep: precision is traded for
// responsiveness, and a selected point can always be re-run at full precision.
const sweepStepFloor = 0.1

// coarsen returns sweep settings with the time step floored.
func coarsen(settings SimulationSettings) SimulationSettings {
	settings.TimeStep = math.Max(settings.TimeStep, sweepStepFloor)
	return settings
}

// gridValues expands a SweepRange into its inclusive grid points.
func gridValues(r SweepRange) []float64 {
	if !r.Valid() {
		return nil
	}
	n := int(math.Floor((r.Max-r.Min)/r.Step+1e-9)) + 1
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = r.Min + float64(i)*r.Step
	}
	return vals
}

// RunOptimization sweeps one design variable and returns one result per grid
// point, telemetry disabled. An invalid range yields an empty result set, not
// an error: validation is the caller's business.
func RunOptimization(mode SweepMode, params RocketParams, planet Planet, settings SimulationSettings) []SimulationResult {
	var r SweepRange
	switch mode {
	case SweepTankMass:
		r = params.TankSweep
	case SweepPayload:
		r = params.PayloadSweep
	}
	vals := gridValues(r)
	if vals == nil {
		return nil
	}
	settings = coarsen(settings)
	results := make([]SimulationResult, len(vals))
	for i, v := range vals {
		p := params
		tank := params.TankMass
		if mode == SweepPayload {
			p.Payload = v
		} else {
			tank = v
		}
		results[i] = quietLaunch(tank, p, planet, settings)
	}
	return results
}

// BestResult returns the index of the result maximizing the target, -1 for an
// empty set. A plain linear scan, deliberately separate from the sweep itself.
func BestResult(results []SimulationResult, target OptimizationTarget) int {
	best := -1
	bestVal := math.Inf(-1)
	for i, r := range results {
		v := r.MaxHeight
		if target == TargetDeltaV {
			v = r.DeltaV
		}
		if v > bestVal {
			best, bestVal = i, v
		}
	}
	return best
}

// DataPoint is one cell of the payload/fuel matrix sweep.
type DataPoint struct {
	Payload float64 // in tonnes
	Fuel    float64 // swept wet tank mass in tonnes
	Height  float64 // peak altitude in meters
	DeltaV  float64 // in m/s
}

// RunMatrixSweep simulates every (payload, tank) combination of the two sweep
// ranges on a fixed worker pool. Cells are independent, so the grid order of
// the output is deterministic (payload-major) regardless of scheduling.
// Cancelling the context abandons the sweep and returns nil.
func RunMatrixSweep(ctx context.Context, params RocketParams, planet Planet, settings SimulationSettings) []DataPoint {
	payloads := gridValues(params.PayloadSweep)
	tanks := gridValues(params.TankSweep)
	if payloads == nil || tanks == nil {
		return nil
	}
	settings = coarsen(settings)

	type cell struct{ pi, ti int }
	points := make([]DataPoint, len(payloads)*len(tanks))
	jobs := make(chan cell, runtime.NumCPU())

	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				p := params
				p.Payload = payloads[c.pi]
				res := quietLaunch(tanks[c.ti], p, planet, settings)
				points[c.pi*len(tanks)+c.ti] = DataPoint{
					Payload: res.Payload,
					Fuel:    res.TankMass,
					Height:  res.MaxHeight,
					DeltaV:  res.DeltaV,
				}
			}
		}()
	}

	for pi := range payloads {
		for ti := range tanks {
			if ctx.Err() != nil {
				close(jobs)
				wg.Wait()
				return nil
			}
			jobs <- cell{pi, ti}
		}
	}
	close(jobs)
	wg.Wait()
	return points
}

// quietLaunch runs one sub-simulation with telemetry and logging off. Sweeps
// would otherwise drown stdout and memory.
func quietLaunch(tankMass float64, params RocketParams, planet Planet, settings SimulationSettings) SimulationResult {
	l := NewLaunch(tankMass, params, planet, settings, 0)
	l.SetLogger(kitlog.NewNopLogger())
	return l.Simulate()
}
