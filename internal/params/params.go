package params

import (
	"fmt"
	"math"
)

// SimulationType selects which capability analysis is requested.
type SimulationType string

const (
	SimThrustCP       SimulationType = "Thrust Capability Plot"
	SimWindSpeedCP    SimulationType = "Wind Speed CP"
	SimCurrentSpeedCP SimulationType = "Current Speed CP"
	SimDNVERN         SimulationType = "DNV ERN"
	SimDynamicCP      SimulationType = "Dynamic CP (OrcaFlex)"
)

// SimulationTypes lists the analyses in display order.
var SimulationTypes = []SimulationType{SimThrustCP, SimWindSpeedCP, SimCurrentSpeedCP, SimDNVERN, SimDynamicCP}

// RudderManagement controls how main propeller rudders are handled.
type RudderManagement string

const (
	RudderOff  RudderManagement = "off"
	RudderAuto RudderManagement = "auto"
)

// RudderModes lists the rudder management options in display order.
var RudderModes = []RudderManagement{RudderOff, RudderAuto}

// Environment holds the sea state used by a single capability run.
type Environment struct {
	WaveHs     float64 `yaml:"wave_hs"`    // significant wave height [m]
	WaveTp     float64 `yaml:"wave_tp"`    // peak period [s]
	WaveGamma  float64 `yaml:"wave_gamma"` // JONSWAP peak enhancement [-]
	CurrentVel float64 `yaml:"curr_vel"`   // [m/s]
	WindVel    float64 `yaml:"wind_vel"`   // [m/s]
}

// Loads are external loads applied to the vessel, e.g. by a pipe.
type Loads struct {
	X  float64 `yaml:"load_x"` // [kN], aft to bow
	Y  float64 `yaml:"load_y"` // [kN], centerline to portside
	MZ float64 `yaml:"load_z"` // [kN.m], positive from X to Y
}

// Propellers holds the main propeller options.
type Propellers struct {
	RudderManagement RudderManagement `yaml:"rudder_management"`
	RudderAngle      float64          `yaml:"main_propellers_rudder_angle"` // [deg]
}

// Allocator holds the thrust allocator options.
type Allocator struct {
	InactiveThrusters string  `yaml:"failed_thrusters"` // comma separated thruster ids
	UtilizationLimit  float64 `yaml:"use_limitation"`   // [%]
	ThrustLoss        bool    `yaml:"thrust_loss"`
	WaveCurrent       bool    `yaml:"wave_damp"`
	FzDependency      bool    `yaml:"fdz_dep"`
}

// CapabilityParams are the inputs of the capability plot screen.
type CapabilityParams struct {
	Vessel      string         `yaml:"vessel"`
	Simulation  SimulationType `yaml:"simulation"`
	Environment Environment    `yaml:"environment"`
	Loads       Loads          `yaml:"loads"`
	Propellers  Propellers     `yaml:"propellers"`
	Allocator   Allocator      `yaml:"allocator"`
	Symmetrize  bool           `yaml:"symmetrize"`
}

// BatchParams are the inputs of the quasi-static batch screen. The sea
// states come from the load-case table, one row per simulation.
type BatchParams struct {
	Vessel      string     `yaml:"vessel"`
	Loads       Loads      `yaml:"loads"`
	Propellers  Propellers `yaml:"propellers"`
	Allocator   Allocator  `yaml:"allocator"`
	Simulations int        `yaml:"simulations"`
}

// MaxSimulations bounds the size of the load-case table.
const MaxSimulations = 10000

// DefaultSimulations is the initial number of load-case rows.
const DefaultSimulations = 10

// DefaultCapability returns capability parameters with sensible defaults.
func DefaultCapability() CapabilityParams {
	return CapabilityParams{
		Simulation: SimThrustCP,
		Propellers: Propellers{RudderManagement: RudderOff},
		Allocator:  Allocator{UtilizationLimit: 100, ThrustLoss: true},
	}
}

// DefaultBatch returns batch parameters with sensible defaults.
func DefaultBatch() BatchParams {
	return BatchParams{
		Propellers:  Propellers{RudderManagement: RudderOff},
		Allocator:   Allocator{UtilizationLimit: 100, ThrustLoss: true},
		Simulations: DefaultSimulations,
	}
}

// Validate checks the capability parameters before a run.
func (p *CapabilityParams) Validate() error {
	if p.Vessel == "" {
		return fmt.Errorf("vessel model is required")
	}
	if !validSimulation(p.Simulation) {
		return fmt.Errorf("unknown simulation type %q", p.Simulation)
	}
	if err := p.Environment.Validate(); err != nil {
		return err
	}
	if err := p.Loads.Validate(); err != nil {
		return err
	}
	if err := p.Propellers.Validate(); err != nil {
		return err
	}
	return p.Allocator.Validate()
}

// Validate checks the batch parameters before a run.
func (p *BatchParams) Validate() error {
	if p.Vessel == "" {
		return fmt.Errorf("vessel model is required")
	}
	if p.Simulations < 1 || p.Simulations > MaxSimulations {
		return fmt.Errorf("number of simulations must be between 1 and %d, got %d", MaxSimulations, p.Simulations)
	}
	if err := p.Loads.Validate(); err != nil {
		return err
	}
	if err := p.Propellers.Validate(); err != nil {
		return err
	}
	return p.Allocator.Validate()
}

// Validate checks the sea state.
func (e *Environment) Validate() error {
	if err := nonNegative("wave Hs", e.WaveHs); err != nil {
		return err
	}
	if err := nonNegative("wave Tp", e.WaveTp); err != nil {
		return err
	}
	if e.WaveHs > 0 && e.WaveTp == 0 {
		return fmt.Errorf("wave Tp must be positive when Hs is set")
	}
	if err := nonNegative("wave gamma", e.WaveGamma); err != nil {
		return err
	}
	if err := nonNegative("current velocity", e.CurrentVel); err != nil {
		return err
	}
	return nonNegative("wind velocity", e.WindVel)
}

// Validate rejects non-finite loads.
func (l *Loads) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"load X", l.X}, {"load Y", l.Y}, {"moment Z", l.MZ}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%s must be a finite number", v.name)
		}
	}
	return nil
}

// Validate checks the rudder options.
func (p *Propellers) Validate() error {
	if p.RudderManagement != RudderOff && p.RudderManagement != RudderAuto {
		return fmt.Errorf("rudder management must be off or auto, got %q", p.RudderManagement)
	}
	if p.RudderAngle < -90 || p.RudderAngle > 90 || math.IsNaN(p.RudderAngle) {
		return fmt.Errorf("rudder angle must be between -90 and 90 degrees, got %g", p.RudderAngle)
	}
	return nil
}

// Validate checks the allocator options.
func (a *Allocator) Validate() error {
	if a.UtilizationLimit <= 0 || a.UtilizationLimit > 100 || math.IsNaN(a.UtilizationLimit) {
		return fmt.Errorf("utilization limit must be in (0, 100] %%, got %g", a.UtilizationLimit)
	}
	return nil
}

func validSimulation(s SimulationType) bool {
	for _, t := range SimulationTypes {
		if t == s {
			return true
		}
	}
	return false
}

func nonNegative(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a non-negative number, got %g", name, v)
	}
	return nil
}
