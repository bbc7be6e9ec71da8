// Package params holds the user inputs of the capability plot and batch
// screens. Each screen receives its own section of a Settings value through
// its constructor and edits it through Field setters; no screen reaches
// into another screen's section.
package params

// Settings groups the inputs of every screen.
type Settings struct {
	Capability CapabilityParams `yaml:"capability"`
	Batch      BatchParams      `yaml:"batch"`
}

// Default returns settings with the defaults of every section.
func Default() *Settings {
	return &Settings{
		Capability: DefaultCapability(),
		Batch:      DefaultBatch(),
	}
}

// SetVessel selects the vessel model for both screens.
func (s *Settings) SetVessel(path string) {
	s.Capability.Vessel = path
	s.Batch.Vessel = path
}
