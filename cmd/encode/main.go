// Command encode builds the globe marker scene for one selection and writes it
// as JSON. Community reports can be replayed from a JSON file of form
// submissions; the clock and random locator are fixed so output is
// reproducible and can be checked in as a fixture.
//
// Usage:
//
//	go run ./cmd/encode \
//	  -gas ch4 -year 2040 -opacity 0.6 \
//	  -reports data/mock/report_inputs.json \
//	  -out data/mock/scene_ch4_2040.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/ghg-globe/internal/domain"
	"github.com/jonboulle/clockwork"
)

var fixtureTime = time.Date(2024, time.April, 22, 12, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	gas := flag.String("gas", "co2", "gas to encode: co2, ch4 or n2o")
	year := flag.Int("year", 2023, "year to encode (1977-2069)")
	opacity := flag.Float64("opacity", 0.8, "marker opacity in [0, 1]")
	unclamped := flag.Bool("unclamped", false, "let marker sizes leave [15, 40] for out-of-range values")
	reportsPath := flag.String("reports", "", "optional JSON file with report submissions to replay")
	out := flag.String("out", "", "output path for the scene JSON (stdout when empty)")
	flag.Parse()

	sel, err := domain.NewSelection(*gas, *year, *opacity)
	if err != nil {
		return err
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	policy := domain.ClampSize
	if *unclamped {
		policy = domain.UnclampedSize
	}
	encoder := domain.NewEncoder(policy)
	locator := domain.NewTableLocator(rand.New(rand.NewPCG(2023, 46)))

	state := domain.NewState(sel)
	if *reportsPath != "" {
		inputs, err := loadInputs(*reportsPath)
		if err != nil {
			return fmt.Errorf("loading reports: %w", err)
		}
		for i, in := range inputs {
			next, _, err := state.SubmitReport(in, locator)
			if err != nil {
				log.Printf("skipping report %d: %v", i, err)
				continue
			}
			state = next
		}
	}

	markers, err := encoder.BuildScene(state, domain.Cities())
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	if *out == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(markers)
	}
	if err := writeJSON(*out, markers); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	log.Printf("wrote %d markers: %s", len(markers), *out)

	printStats(markers)
	return nil
}

func loadInputs(path string) ([]domain.ReportInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var inputs []domain.ReportInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, err
	}
	return inputs, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(markers []domain.Marker) {
	levels := map[domain.Level]int{}
	var reports, randomLocated int
	minSize, maxSize := domain.MaxMarkerSize, domain.MinMarkerSize

	for i := range markers {
		m := &markers[i]
		if m.Kind == domain.MarkerReport {
			reports++
			if m.Report.LocationSource == domain.LocationRandom {
				randomLocated++
			}
			continue
		}
		levels[m.City.Level]++
		minSize = min(minSize, m.Size)
		maxSize = max(maxSize, m.Size)
	}

	fmt.Println("\n=== Scene stats ===")
	fmt.Printf("Markers: %d (cities=%d, reports=%d)\n", len(markers), len(markers)-reports, reports)
	fmt.Printf("Levels: low=%d, medium=%d, high=%d\n",
		levels[domain.LevelLow], levels[domain.LevelMedium], levels[domain.LevelHigh])
	fmt.Printf("City marker size: %.2f-%.2f\n", minSize, maxSize)
	fmt.Printf("Reports with placeholder location: %d\n", randomLocated)
}
