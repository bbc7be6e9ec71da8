package params

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tells the UI which widget edits a field.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindText
	KindFile
	KindChoice
	KindBool
)

// Field binds one form input to one parameter. Set is the only way a form
// mutates the parameter struct behind it.
type Field struct {
	Key     string
	Section string
	Label   string
	Unit    string
	Tooltip string
	Kind    Kind
	Choices []string

	get func() string
	set func(string) error
}

// Value returns the current value as text.
func (f Field) Value() string { return f.get() }

// Set parses text and stores it. On error the stored value is unchanged.
func (f Field) Set(text string) error {
	if err := f.set(text); err != nil {
		return fmt.Errorf("%s: %w", f.Label, err)
	}
	return nil
}

// Check reports whether text would be accepted by Set, without storing it.
func (f Field) Check(text string) error {
	switch f.Kind {
	case KindFloat:
		_, err := ParseFloat(text)
		return err
	case KindInt:
		_, err := ParseInt(text)
		return err
	case KindChoice:
		for _, c := range f.Choices {
			if c == text {
				return nil
			}
		}
		return fmt.Errorf("unknown option %q", text)
	case KindBool:
		_, err := strconv.ParseBool(text)
		return err
	}
	return nil
}

// ParseFloat parses a numeric form entry. Surrounding space is ignored.
func ParseFloat(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("value is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	return v, nil
}

// ParseInt parses an integer form entry. Surrounding space is ignored.
func ParseInt(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("value is required")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", text)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func floatField(key, section, label, unit, tooltip string, p *float64) Field {
	return Field{
		Key: key, Section: section, Label: label, Unit: unit, Tooltip: tooltip,
		Kind: KindFloat,
		get:  func() string { return formatFloat(*p) },
		set: func(s string) error {
			v, err := ParseFloat(s)
			if err != nil {
				return err
			}
			*p = v
			return nil
		},
	}
}

func boolField(key, section, label string, p *bool) Field {
	return Field{
		Key: key, Section: section, Label: label, Kind: KindBool,
		get: func() string { return strconv.FormatBool(*p) },
		set: func(s string) error {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			*p = v
			return nil
		},
	}
}

func textField(key, section, label, tooltip string, p *string) Field {
	return Field{
		Key: key, Section: section, Label: label, Tooltip: tooltip, Kind: KindText,
		get: func() string { return *p },
		set: func(s string) error {
			*p = strings.TrimSpace(s)
			return nil
		},
	}
}

func vesselField(p *string) Field {
	f := textField("vessel", "Vessel", "Vessel Model", "YAML vessel model file", p)
	f.Kind = KindFile
	return f
}

func rudderField(p *RudderManagement) Field {
	choices := make([]string, len(RudderModes))
	for i, m := range RudderModes {
		choices[i] = string(m)
	}
	f := Field{
		Key: "rudder_management", Section: "Main Propellers", Label: "Rudder Management",
		Kind: KindChoice, Choices: choices,
		get: func() string { return string(*p) },
	}
	f.set = func(s string) error {
		if err := f.Check(s); err != nil {
			return err
		}
		*p = RudderManagement(s)
		return nil
	}
	return f
}

func simulationField(p *SimulationType) Field {
	choices := make([]string, len(SimulationTypes))
	for i, t := range SimulationTypes {
		choices[i] = string(t)
	}
	f := Field{
		Key: "simulation", Section: "Simulation", Label: "Simulation",
		Kind: KindChoice, Choices: choices,
		get: func() string { return string(*p) },
	}
	f.set = func(s string) error {
		if err := f.Check(s); err != nil {
			return err
		}
		*p = SimulationType(s)
		return nil
	}
	return f
}

func loadFields(l *Loads) []Field {
	return []Field{
		floatField("load_x", "Applied Loads", "Pipe Load X", "kN", "X-axis from aft to bow", &l.X),
		floatField("load_y", "Applied Loads", "Pipe Load Y", "kN", "Y-axis from centerline to portside", &l.Y),
		floatField("load_z", "Applied Loads", "Pipe Moment Z", "kN.m", "Positive from X-axis to Y-axis", &l.MZ),
	}
}

func propellerFields(p *Propellers) []Field {
	return []Field{
		rudderField(&p.RudderManagement),
		floatField("main_propellers_rudder_angle", "Main Propellers", "Rudder Angles", "deg", "", &p.RudderAngle),
	}
}

func allocatorFields(a *Allocator) []Field {
	return []Field{
		textField("failed_thrusters", "Allocator Options", "Inactive Thrusters", "Comma separated thruster ids", &a.InactiveThrusters),
		floatField("use_limitation", "Allocator Options", "Utilization Limit", "%", "", &a.UtilizationLimit),
		boolField("thrust_loss", "Allocator Options", "Thrust Loss", &a.ThrustLoss),
		boolField("wave_damp", "Allocator Options", "Wave/Current", &a.WaveCurrent),
		boolField("fdz_dep", "Allocator Options", "Fdz_dependency", &a.FzDependency),
	}
}

// Fields returns the form fields bound to p, in display order.
func (p *CapabilityParams) Fields() []Field {
	env := &p.Environment
	fields := []Field{
		vesselField(&p.Vessel),
		simulationField(&p.Simulation),
		floatField("wave_hs", "Environment", "Wave Hs", "m", "", &env.WaveHs),
		floatField("wave_tp", "Environment", "Wave Tp", "s", "", &env.WaveTp),
		floatField("wave_gamma", "Environment", "Wave Gamma", "-", "", &env.WaveGamma),
		floatField("curr_vel", "Environment", "Current Vel.", "m/s", "", &env.CurrentVel),
		floatField("wind_vel", "Environment", "Wind Vel.", "m/s", "", &env.WindVel),
	}
	fields = append(fields, loadFields(&p.Loads)...)
	fields = append(fields, propellerFields(&p.Propellers)...)
	fields = append(fields, allocatorFields(&p.Allocator)...)
	return append(fields, boolField("symmetrize", "Allocator Options", "Symmetrize", &p.Symmetrize))
}

// Fields returns the form fields bound to p, in display order. The
// simulation count is not among them: it drives the load-case table and
// has its own control.
func (p *BatchParams) Fields() []Field {
	fields := []Field{vesselField(&p.Vessel)}
	fields = append(fields, loadFields(&p.Loads)...)
	fields = append(fields, propellerFields(&p.Propellers)...)
	return append(fields, allocatorFields(&p.Allocator)...)
}

// Lookup returns the field with the given key.
func Lookup(fields []Field, key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
