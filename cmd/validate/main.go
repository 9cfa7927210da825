// Command validate sweeps every gas across the full year range and checks the
// encoding pipeline invariants phase by phase: value bounds, colour and size
// mapping, level monotonicity and scene integrity. Given a fixture written by
// cmd/encode it also re-encodes the same selection and diffs the result.
//
// Usage:
//
//	go run ./cmd/validate
//	go run ./cmd/validate \
//	  -fixture data/mock/scene_ch4_2040.json \
//	  -gas ch4 -year 2040 -opacity 0.6 \
//	  -reports data/mock/report_inputs.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/couchcryptid/ghg-globe/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"
)

const eps = 1e-9

// sampleYears are the years used for the more expensive scene checks.
var sampleYears = []int{domain.MinYear, 2000, 2023, 2046, domain.MaxYear}

var sampleReports = []domain.ReportInput{
	{Category: "air-quality", Location: "London", Description: "Haze over the Thames"},
	{Category: "industrial-emission", Location: "Beijing", Description: "Stack plume"},
	{Location: "Atlantis", Description: "Unknown place"},
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// fixtureArgs describes the selection a fixture was encoded with.
type fixtureArgs struct {
	path      string
	gas       string
	year      int
	opacity   float64
	unclamped bool
	reports   string
}

func main() {
	var fx fixtureArgs
	flag.StringVar(&fx.path, "fixture", "", "optional scene JSON written by cmd/encode")
	flag.StringVar(&fx.gas, "gas", "co2", "gas the fixture was encoded with")
	flag.IntVar(&fx.year, "year", 2023, "year the fixture was encoded with")
	flag.Float64Var(&fx.opacity, "opacity", 0.8, "opacity the fixture was encoded with")
	flag.BoolVar(&fx.unclamped, "unclamped", false, "fixture was encoded with unclamped sizes")
	flag.StringVar(&fx.reports, "reports", "", "report submissions the fixture replayed")
	flag.Parse()

	if code := run(fx); code != 0 {
		os.Exit(code)
	}
}

func run(fx fixtureArgs) int {
	// Same fixed clock as cmd/encode so report timestamps match fixtures.
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.April, 22, 12, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	fmt.Println("=== Globe Encoding Validation ===")
	fmt.Println()

	encoder := domain.NewEncoder(domain.ClampSize)
	cities := domain.Cities()

	phases := []*phase{
		validateValueBounds(encoder, cities),
		validateColorAndSize(encoder, cities),
		validateLevels(encoder),
		validateScenes(encoder, cities),
	}
	if fx.path != "" {
		phases = append(phases, validateFixture(fx))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Swept: %d gases x %d cities x %d years\n",
		len(domain.SupportedGases), len(cities), domain.MaxYear-domain.MinYear+1)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1 ──

// validateValueBounds checks that every perturbed value stays within 10% of
// its baseline and that the reference year is unperturbed apart from the seed.
func validateValueBounds(enc *domain.Encoder, cities []domain.Measurement) *phase {
	p := &phase{name: "Phase 1: Value Bounds (baseline +/-10%)"}

	for _, gas := range domain.SupportedGases {
		for i, m := range cities {
			base, err := m.Baseline(gas)
			if err != nil {
				p.errorf("%s/%s: baseline: %v", m.City, gas, err)
				continue
			}
			for year := domain.MinYear; year <= domain.MaxYear; year++ {
				v, err := enc.ComputeValue(m, gas, year, i)
				if err != nil {
					p.errorf("%s/%s/%d: %v", m.City, gas, year, err)
					continue
				}
				if math.Abs(v-base) > 0.1*base+eps {
					p.errorf("%s/%s/%d: value %g outside %g +/-10%%", m.City, gas, year, v, base)
				}
			}

			// At the reference year only the seed phase remains.
			v, _ := enc.ComputeValue(m, gas, domain.DefaultCalibration.ReferenceYear, i)
			want := base + base*0.1*math.Sin(float64(i))
			if math.Abs(v-want) > eps {
				p.errorf("%s/%s: reference year value %g, want %g", m.City, gas, v, want)
			}
		}
	}
	return p
}

// ── Phase 2 ──

func validateColorAndSize(enc *domain.Encoder, cities []domain.Measurement) *phase {
	p := &phase{name: "Phase 2: Colour & Size Mapping"}

	for _, spec := range enc.Gases.Specs() {
		checkAnchors(p, enc, spec)

		for i, m := range cities {
			for year := domain.MinYear; year <= domain.MaxYear; year++ {
				ve, err := enc.Encode(m, spec.Key, year, i)
				if err != nil {
					p.errorf("%s/%s/%d: %v", m.City, spec.Key, year, err)
					continue
				}
				if ve.Size < domain.MinMarkerSize-eps || ve.Size > domain.MaxMarkerSize+eps {
					p.errorf("%s/%s/%d: size %g outside [15, 40]", m.City, spec.Key, year, ve.Size)
				}
				c := ve.Color
				if !in01(c.R) || !in01(c.G) || !in01(c.B) || c.A != 1 {
					p.errorf("%s/%s/%d: colour %+v out of gamut", m.City, spec.Key, year, c)
				}
			}
		}
	}
	return p
}

func checkAnchors(p *phase, enc *domain.Encoder, spec domain.GasSpec) {
	mid := (spec.Range.Min + spec.Range.Max) / 2
	anchors := []struct {
		value float64
		color domain.RGBA
		size  float64
	}{
		{spec.Range.Min, domain.Blue, domain.MinMarkerSize},
		{mid, domain.Yellow, (domain.MinMarkerSize + domain.MaxMarkerSize) / 2},
		{spec.Range.Max, domain.Red, domain.MaxMarkerSize},
		{spec.Range.Max * 2, domain.Red, domain.MaxMarkerSize},
		{spec.Range.Min / 2, domain.Blue, domain.MinMarkerSize},
	}
	for _, a := range anchors {
		c, _ := enc.ColorFor(a.value, spec.Key)
		if !colorEq(c, a.color) {
			p.errorf("%s: colour at %g = %s, want %s", spec.Key, a.value, c.Hex(), a.color.Hex())
		}
		s, _ := enc.SizeFor(a.value, spec.Key)
		if math.Abs(s-a.size) > eps {
			p.errorf("%s: size at %g = %g, want %g", spec.Key, a.value, s, a.size)
		}
	}
}

// ── Phase 3 ──

var levelRank = map[domain.Level]int{
	domain.LevelLow:    0,
	domain.LevelMedium: 1,
	domain.LevelHigh:   2,
}

// validateLevels sweeps each gas from half its minimum to one and a half times
// its maximum and checks the level never steps down.
func validateLevels(enc *domain.Encoder) *phase {
	p := &phase{name: "Phase 3: Level Monotonicity"}

	const steps = 2000
	for _, spec := range enc.Gases.Specs() {
		lo, hi := spec.Range.Min*0.5, spec.Range.Max*1.5
		prev := -1
		for i := 0; i <= steps; i++ {
			v := lo + (hi-lo)*float64(i)/steps
			level, err := enc.ClassifyLevel(v, spec.Key)
			if err != nil {
				p.errorf("%s: %v", spec.Key, err)
				break
			}
			if levelRank[level] < prev {
				p.errorf("%s: level dropped to %s at %g", spec.Key, level, v)
			}
			prev = levelRank[level]
		}
		if prev != levelRank[domain.LevelHigh] {
			p.errorf("%s: sweep never reached %s", spec.Key, domain.LevelHigh)
		}

		th := enc.Thresholds[spec.Key]
		if l, _ := enc.ClassifyLevel(th.Medium, spec.Key); l != domain.LevelMedium {
			p.errorf("%s: value at medium threshold classified %s", spec.Key, l)
		}
		if l, _ := enc.ClassifyLevel(th.High, spec.Key); l != domain.LevelHigh {
			p.errorf("%s: value at high threshold classified %s", spec.Key, l)
		}
	}
	return p
}

// ── Phase 4 ──

func validateScenes(enc *domain.Encoder, cities []domain.Measurement) *phase {
	p := &phase{name: "Phase 4: Scene Integrity"}

	locator := domain.NewTableLocator(rand.New(rand.NewPCG(1, 2)))
	state := domain.NewState(domain.DefaultSelection)
	for _, in := range sampleReports {
		next, _, err := state.SubmitReport(in, locator)
		if err != nil {
			p.errorf("submit %q: %v", in.Location, err)
			return p
		}
		state = next
	}

	for _, gas := range domain.SupportedGases {
		for _, year := range sampleYears {
			sel := domain.Selection{Gas: gas, Year: year, Opacity: 0.5}
			st, err := state.WithSelection(sel)
			if err != nil {
				p.errorf("%s/%d: %v", gas, year, err)
				continue
			}
			markers, err := enc.BuildScene(st, cities)
			if err != nil {
				p.errorf("%s/%d: %v", gas, year, err)
				continue
			}
			checkScene(p, sel, markers, len(cities), len(sampleReports))
		}
	}
	return p
}

func checkScene(p *phase, sel domain.Selection, markers []domain.Marker, nCities, nReports int) {
	if len(markers) != nCities+nReports {
		p.errorf("%s/%d: %d markers, want %d", sel.Gas, sel.Year, len(markers), nCities+nReports)
		return
	}
	seen := make(map[string]bool, len(markers))
	for i := range markers {
		m := &markers[i]
		if seen[m.ID] {
			p.errorf("%s/%d: duplicate marker id %s", sel.Gas, sel.Year, m.ID)
		}
		seen[m.ID] = true

		switch m.Kind {
		case domain.MarkerCity:
			if m.City == nil || m.Height != domain.CityMarkerHeight || math.Abs(m.Color.A-sel.Opacity) > eps {
				p.errorf("%s/%d: malformed city marker %s", sel.Gas, sel.Year, m.ID)
			}
		case domain.MarkerReport:
			if m.Report == nil || m.Height != domain.ReportMarkerHeight ||
				m.Size != domain.ReportMarkerSize || !colorEq(m.Color, domain.Yellow) {
				p.errorf("%s/%d: malformed report marker %s", sel.Gas, sel.Year, m.ID)
			}
		default:
			p.errorf("%s/%d: unknown marker kind %q", sel.Gas, sel.Year, m.Kind)
		}
	}
}

// ── Phase 5 ──

// validateFixture re-encodes the fixture's selection and diffs it against the
// file. Marker and report IDs are ignored since report IDs are random.
func validateFixture(fx fixtureArgs) *phase {
	p := &phase{name: "Phase 5: Fixture Reproduction"}

	data, err := os.ReadFile(fx.path)
	if err != nil {
		p.errorf("read fixture: %v", err)
		return p
	}
	var want []domain.Marker
	if err := json.Unmarshal(data, &want); err != nil {
		p.errorf("decode fixture: %v", err)
		return p
	}

	sel, err := domain.NewSelection(fx.gas, fx.year, fx.opacity)
	if err != nil {
		p.errorf("selection: %v", err)
		return p
	}
	policy := domain.ClampSize
	if fx.unclamped {
		policy = domain.UnclampedSize
	}

	state := domain.NewState(sel)
	if fx.reports != "" {
		inputs, err := loadInputs(fx.reports)
		if err != nil {
			p.errorf("load reports: %v", err)
			return p
		}
		locator := domain.NewTableLocator(rand.New(rand.NewPCG(2023, 46)))
		for _, in := range inputs {
			if next, _, err := state.SubmitReport(in, locator); err == nil {
				state = next
			}
		}
	}

	got, err := domain.NewEncoder(policy).BuildScene(state, domain.Cities())
	if err != nil {
		p.errorf("build scene: %v", err)
		return p
	}

	opts := cmp.Options{
		cmpopts.EquateApprox(0, 1e-9),
		cmpopts.IgnoreFields(domain.Marker{}, "ID"),
		cmpopts.IgnoreFields(domain.ReportInfo{}, "ID"),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		p.errorf("fixture mismatch (-fixture +encoded):\n%s", diff)
	}
	return p
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

func in01(v float64) bool { return v >= -eps && v <= 1+eps }

func colorEq(a, b domain.RGBA) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
