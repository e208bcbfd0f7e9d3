package ascent

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// TelemetryPoint is one logged instant of a flight. The values are recomputed
// from the sampled state snapshot, not from integrator internals.
type TelemetryPoint struct {
	Time       float64 // seconds since liftoff
	Height     float64 // meters above the surface
	Velocity   float64 // m/s
	Gravity    float64 // local gravity in m/s²
	FuelPct    float64 // remaining fuel in percent of the initial load
	FuelBurned float64 // in tonnes
	Mass       float64 // in tonnes
	Accel      float64 // net acceleration in m/s², signed
	Thrust     float64 // in Newtons
	Drag       float64 // in Newtons
	TWR        float64
}

// ExportConfig configures the exporting of a telemetry series.
type ExportConfig struct {
	Filename     string
	OutputDir    string
	AsCSV        bool
	Timestamp    bool
	CSVAppend    func(pt TelemetryPoint) string // Custom export (do not include leading comma)
	CSVAppendHdr func() string                  // Header for the custom export
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

// createTelemetryCSVFile returns a file which requires a defer close statement!
func createTelemetryCSVFile(conf ExportConfig) *os.File {
	dir := conf.OutputDir
	if dir == "" {
		dir = "."
	}
	var filename string
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/telemetry-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", dir, conf.Filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/telemetry-%s.csv", dir, conf.Filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are time (s), height (m), velocity (m/s), gravity (m/s2), fuel (%%), fuelBurned (t), mass (t), accel (m/s2), thrust (N), drag (N), twr
time,height,velocity,gravity,fuelPct,fuelBurned,mass,accel,thrust,drag,twr`, time.Now().UTC()))
	if conf.CSVAppendHdr != nil {
		f.WriteString("," + conf.CSVAppendHdr())
	}
	return f
}

// StreamTelemetry streams the points of the channel to the configured file.
func StreamTelemetry(conf ExportConfig, points <-chan TelemetryPoint) {
	if conf.IsUseless() {
		for range points {
			// Drain so the producer never blocks.
		}
		return
	}
	f := createTelemetryCSVFile(conf)
	defer f.Close()
	for pt := range points {
		asTxt := fmt.Sprintf("%.3f,%.3f,%.3f,%.5f,%.3f,%.4f,%.4f,%.4f,%.1f,%.1f,%.4f", pt.Time, pt.Height, pt.Velocity, pt.Gravity, pt.FuelPct, pt.FuelBurned, pt.Mass, pt.Accel, pt.Thrust, pt.Drag, pt.TWR)
		if conf.CSVAppend != nil {
			asTxt += "," + conf.CSVAppend(pt)
		}
		if _, err := f.WriteString("\n" + asTxt); err != nil {
			panic(err)
		}
	}
}

// ExportTelemetry writes a full telemetry series through StreamTelemetry and
// waits until the file is flushed.
func ExportTelemetry(conf ExportConfig, series []TelemetryPoint) {
	if conf.IsUseless() {
		return
	}
	points := make(chan TelemetryPoint, 1000)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		StreamTelemetry(conf, points)
	}()
	for _, pt := range series {
		points <- pt
	}
	close(points)
	wg.Wait()
}
