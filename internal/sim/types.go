package sim

import "github.com/san-kum/argonmd/internal/md"

// Diagnostics is the per-step sample a run yields for external reporting:
// energies, instantaneous temperature and elapsed reduced time.
type Diagnostics struct {
	Step int
	Time float64
	Up   float64
	Uk   float64
	Utot float64
	Tc   float64
}

type Metric interface {
	Name() string
	Observe(d Diagnostics)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *md.State, d Diagnostics)
}

type Config struct {
	Steps    int
	Validate bool
}

type Result struct {
	Series     []Diagnostics
	Metrics    map[string]float64
	Errors     []error
	StepsTaken int
}
