package ascent

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestExportTelemetry(t *testing.T) {
	dir := t.TempDir()
	res := quietSimulate(30, titanParams(), Earth, vacuumSettings(), 1)
	conf := ExportConfig{Filename: "test", OutputDir: dir, AsCSV: true}
	ExportTelemetry(conf, res.Telemetry)

	contents, err := os.ReadFile(dir + "/telemetry-test.csv")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(contents), "\n")
	var dataLines, headerLines int
	for _, line := range lines {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "time,") {
			headerLines++
			continue
		}
		dataLines++
	}
	if headerLines == 0 {
		t.Fatal("export has no header")
	}
	if dataLines != len(res.Telemetry) {
		t.Fatalf("expected %d data rows, got %d", len(res.Telemetry), dataLines)
	}
}

func TestExportTelemetryAppend(t *testing.T) {
	dir := t.TempDir()
	conf := ExportConfig{
		Filename:     "append",
		OutputDir:    dir,
		AsCSV:        true,
		CSVAppendHdr: func() string { return "mach" },
		CSVAppend:    func(pt TelemetryPoint) string { return fmt.Sprintf("%.3f", pt.Velocity/343) },
	}
	ExportTelemetry(conf, []TelemetryPoint{{Time: 0, Velocity: 343}})
	contents, err := os.ReadFile(dir + "/telemetry-append.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(contents), ",mach") {
		t.Fatal("appended header missing")
	}
	if !strings.Contains(string(contents), ",1.000") {
		t.Fatal("appended column missing")
	}
}

func TestExportTelemetryUseless(t *testing.T) {
	conf := ExportConfig{Filename: "nope", OutputDir: "/nonexistent"}
	if !conf.IsUseless() {
		t.Fatal("a config without CSV output is useless")
	}
	// Must not attempt to create any file.
	ExportTelemetry(conf, []TelemetryPoint{{Time: 0}})
}
