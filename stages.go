package ascent

import (
	"fmt"
	"math"
	"strings"
)

/* Closed-form multi-stage Δv/TWR accounting. No integration happens here:
every phase is a rocket-equation evaluation with the fuel state threaded
from one phase into the next. */

// StageMode defines how a stage burns relative to the stage above it.
type StageMode uint8

const (
	// Serial stages burn alone and separate at depletion.
	Serial StageMode = iota
	// Parallel stages burn simultaneously with the next stage up (boosters).
	Parallel
)

func (m StageMode) String() string {
	switch m {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	}
	panic("cannot stringify unknown stage mode")
}

// ParseStageMode returns the stage mode from its name.
func ParseStageMode(name string) (StageMode, error) {
	switch strings.ToLower(name) {
	case "serial", "":
		return Serial, nil
	case "parallel":
		return Parallel, nil
	default:
		return Serial, fmt.Errorf("undefined stage mode '%s'", name)
	}
}

// RocketStage is one stage of a stack. Index 0 is the bottom, first to burn.
type RocketStage struct {
	Name     string
	DryMass  float64 // in tonnes, including engines
	FuelMass float64 // in tonnes
	Thrust   float64 // aggregate thrust in tonnes-force
	Isp      float64 // in seconds
	Enabled  bool
	Mode     StageMode
}

// NewStage builds a stage around count engines. The structural dry mass is
// provided without engines; their mass is added here.
func NewStage(name string, structuralDry, fuel float64, eng Engine, count int, mode StageMode) RocketStage {
	return RocketStage{
		Name:     name,
		DryMass:  structuralDry + float64(count)*eng.Mass,
		FuelMass: fuel,
		Thrust:   float64(count) * eng.Thrust,
		Isp:      eng.Isp,
		Enabled:  true,
		Mode:     mode,
	}
}

// WetMass returns the full mass of the stage in tonnes.
func (s RocketStage) WetMass() float64 {
	return s.DryMass + s.FuelMass
}

// ComputedStage is the derived accounting for one input stage. It is fully
// recomputed on every call and never persisted.
type ComputedStage struct {
	Name             string
	Skipped          bool    // disabled stages contribute nothing
	StartMass        float64 // total stack mass at first phase start, tonnes
	EndMass          float64 // total stack mass at last phase end, tonnes
	MassAbove        float64 // payload plus everything above, wet, tonnes
	DeltaV           float64 // m/s contributed by this stage's phases
	BurnTime         float64 // seconds across this stage's phases
	TWRStart, TWREnd float64
	CumulativeDeltaV float64 // from liftoff through this stage
	Thrust           float64 // phase thrust, combined for parallel phases, t-force
	Isp              float64 // effective Isp, combined for parallel phases
}

// liveStage threads the remaining fuel of a stage across phases. Boosters
// consumed during a parallel phase reduce the mass later phases must lift.
type liveStage struct {
	idx      int
	stage    RocketStage
	fuelLeft float64
}

// ComputeStages runs the per-phase rocket-equation accounting for a stack,
// bottom to top. Masses in tonnes, gravity in m/s². The returned slice is
// index-aligned with the input; disabled stages come back Skipped.
func ComputeStages(stages []RocketStage, payloadMass, gravity float64) []ComputedStage {
	out := make([]ComputedStage, len(stages))
	live := make([]liveStage, 0, len(stages))
	for i, st := range stages {
		out[i].Name = st.Name
		if !st.Enabled {
			out[i].Skipped = true
			continue
		}
		live = append(live, liveStage{idx: i, stage: st, fuelLeft: st.FuelMass})
	}

	var cumulative float64
	touched := make([]bool, len(stages))
	for len(live) > 0 {
		cur := &live[0]
		var pair *liveStage
		if cur.stage.Mode == Parallel && len(live) > 1 {
			// A parallel flag on the topmost stage has nothing to pair with.
			pair = &live[1]
		}

		curFlow := flowRate(cur.stage.Thrust, cur.stage.Isp)
		phaseThrust := cur.stage.Thrust
		phaseFlow := curFlow
		var pairFlow float64
		if pair != nil {
			pairFlow = flowRate(pair.stage.Thrust, pair.stage.Isp)
			phaseThrust += pair.stage.Thrust
			phaseFlow += pairFlow
		}

		// The phase ends when the shorter-burning participant runs dry.
		phaseTime := stageBurnTime(cur.fuelLeft, curFlow)
		if pair != nil {
			phaseTime = math.Min(phaseTime, stageBurnTime(pair.fuelLeft, pairFlow))
		}
		if math.IsInf(phaseTime, 1) {
			// Nothing can burn at all.
			phaseTime = 0
		}

		massStart := payloadMass
		for _, ls := range live {
			massStart += ls.stage.DryMass + ls.fuelLeft
		}
		massEnd := massStart - phaseFlow*phaseTime

		var Δv, effIsp float64
		if phaseFlow > 0 {
			effIsp = phaseThrust / phaseFlow
		}
		if phaseTime > 0 && massEnd > 0 && massStart > massEnd {
			Δv = effIsp * G0 * math.Log(massStart/massEnd)
		}
		cumulative += Δv

		cs := &out[cur.idx]
		if !touched[cur.idx] {
			touched[cur.idx] = true
			cs.StartMass = massStart
			cs.MassAbove = massStart - (cur.stage.DryMass + cur.fuelLeft)
			cs.TWRStart = twrAt(phaseThrust, massStart, gravity)
			cs.Thrust = phaseThrust
			cs.Isp = effIsp
		}
		cs.DeltaV += Δv
		cs.BurnTime += phaseTime
		cs.EndMass = massEnd
		cs.TWREnd = twrAt(phaseThrust, massEnd, gravity)
		cs.CumulativeDeltaV = cumulative

		cur.fuelLeft -= curFlow * phaseTime
		if pair != nil {
			pair.fuelLeft -= pairFlow * phaseTime
		}

		// Separate whoever is dry. A stage without flow is dropped too, or the
		// stack would never make progress.
		next := live[:0]
		for i := range live {
			ls := live[i]
			burned := i == 0 || (pair != nil && i == 1)
			if burned && (ls.fuelLeft <= massε || flowRate(ls.stage.Thrust, ls.stage.Isp) == 0) {
				continue
			}
			next = append(next, ls)
		}
		live = next
	}
	return out
}

// stageBurnTime returns how long one stage can sustain its own flow, +Inf for
// a stage that does not flow so a parallel partner can still win the race.
func stageBurnTime(fuel, flow float64) float64 {
	if flow <= 0 {
		return math.Inf(1)
	}
	return fuel / flow
}

// twrAt converts an aggregate tonnes-force thrust and a tonnes mass into a
// thrust-to-weight ratio under the given local gravity.
func twrAt(thrust, mass, gravity float64) float64 {
	if mass <= 0 || gravity <= 0 {
		return 0
	}
	return thrust * G0 / (mass * gravity)
}
