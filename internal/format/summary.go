package format

import (
	"fmt"
	"strings"

	"vessel-sim/internal/cases"
	"vessel-sim/internal/params"
)

// FormatCaseHeader returns a header line for load-case output.
func FormatCaseHeader() string {
	return fmt.Sprintf("%-5s %6s %6s %6s %8s %7s %7s %7s %7s %7s",
		"Case", "Hs", "Tp", "Gamma", "Heading", "CurVel", "CurDir", "WndVel", "WndDir", "Prob")
}

// FormatCase produces a single formatted line for a load case.
func FormatCase(c cases.Case) string {
	return fmt.Sprintf("%-5d %6.2f %6.2f %6.2f %8.1f %7.2f %7.1f %7.2f %7.1f %7.4f",
		c.Row+1, c.Hs, c.Tp, c.Gamma, c.Heading, c.CurrentVel, c.CurrentDir, c.WindVel, c.WindDir, c.Probability)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func writeVessel(b *strings.Builder, vessel, digest string) {
	b.WriteString(fmt.Sprintf("Vessel:          %s\n", vessel))
	if digest != "" {
		b.WriteString(fmt.Sprintf("Model digest:    %s\n", digest))
	}
}

func writeCommon(b *strings.Builder, l params.Loads, p params.Propellers, a params.Allocator) {
	b.WriteString("\n--- Applied Loads ---\n")
	b.WriteString(fmt.Sprintf("Load X:          %.2f kN\n", l.X))
	b.WriteString(fmt.Sprintf("Load Y:          %.2f kN\n", l.Y))
	b.WriteString(fmt.Sprintf("Moment Z:        %.2f kN.m\n", l.MZ))

	b.WriteString("\n--- Propellers & Allocator ---\n")
	b.WriteString(fmt.Sprintf("Rudder mgmt:     %s\n", p.RudderManagement))
	b.WriteString(fmt.Sprintf("Rudder angle:    %.1f deg\n", p.RudderAngle))
	if a.InactiveThrusters != "" {
		b.WriteString(fmt.Sprintf("Inactive:        %s\n", a.InactiveThrusters))
	}
	b.WriteString(fmt.Sprintf("Utilization:     %.1f %%\n", a.UtilizationLimit))
	b.WriteString(fmt.Sprintf("Thrust loss:     %s\n", onOff(a.ThrustLoss)))
	b.WriteString(fmt.Sprintf("Wave/Current:    %s\n", onOff(a.WaveCurrent)))
	b.WriteString(fmt.Sprintf("Fz dependency:   %s\n", onOff(a.FzDependency)))
}

// FormatCapability produces a human-readable summary of a capability plot
// request. digest is the vessel model fingerprint and may be empty.
func FormatCapability(p *params.CapabilityParams, digest string) string {
	var b strings.Builder

	b.WriteString("=== Capability Plot ===\n")
	writeVessel(&b, p.Vessel, digest)
	b.WriteString(fmt.Sprintf("Simulation:      %s\n", p.Simulation))

	env := p.Environment
	b.WriteString("\n--- Environment ---\n")
	b.WriteString(fmt.Sprintf("Wave:            Hs %.2f m  Tp %.2f s  gamma %.2f\n", env.WaveHs, env.WaveTp, env.WaveGamma))
	b.WriteString(fmt.Sprintf("Current:         %.2f m/s\n", env.CurrentVel))
	b.WriteString(fmt.Sprintf("Wind:            %.2f m/s\n", env.WindVel))

	writeCommon(&b, p.Loads, p.Propellers, p.Allocator)
	b.WriteString(fmt.Sprintf("Symmetrize:      %s\n", onOff(p.Symmetrize)))

	b.WriteString("=======================")
	return b.String()
}

// FormatBatch produces a human-readable summary of a batch request and its
// load cases. rep may be nil when the cases have not been checked.
func FormatBatch(p *params.BatchParams, digest string, cs []cases.Case, rep *cases.Report) string {
	var b strings.Builder

	b.WriteString("=== Quasi-Static Analysis ===\n")
	writeVessel(&b, p.Vessel, digest)
	b.WriteString(fmt.Sprintf("Simulations:     %d\n", p.Simulations))
	writeCommon(&b, p.Loads, p.Propellers, p.Allocator)

	if len(cs) > 0 {
		b.WriteString("\n--- Load Cases ---\n")
		b.WriteString(FormatCaseHeader())
		b.WriteByte('\n')
		for _, c := range cs {
			b.WriteString(FormatCase(c))
			b.WriteByte('\n')
		}
	}

	if rep != nil {
		b.WriteString("\n--- Check ---\n")
		b.WriteString(fmt.Sprintf("Valid cases:     %d/%d\n", rep.Valid, rep.Total))
		b.WriteString(fmt.Sprintf("Probability sum: %.4f\n", rep.TotalProbability))
		for _, err := range rep.Errors {
			b.WriteString(fmt.Sprintf("Error: %v\n", err))
		}
		if rep.Canceled {
			b.WriteString("Check canceled\n")
		}
	}

	b.WriteString("=============================")
	return b.String()
}
