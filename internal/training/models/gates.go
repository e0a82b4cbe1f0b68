package models

// Gates are per-context deployment flags derived from clearance.
type Gates struct {
	CanDeployCore        bool `json:"can_deploy_core"`
	StreetMedicine       bool `json:"street_medicine_gate"`
	Clinic               bool `json:"clinic_gate"`
	HealthFair           bool `json:"health_fair_gate"`
	NaloxoneDistribution bool `json:"naloxone_distribution"`
	OraQuickDistribution bool `json:"oraquick_distribution"`
	// QualifiedEventTypes lists every cleared program tag, for user-facing messages.
	QualifiedEventTypes []Program `json:"qualified_event_types"`
}

// Allows reports the gate for a program. ProgramNone needs only core deployment.
func (g Gates) Allows(p Program) bool {
	switch p {
	case ProgramNone:
		return g.CanDeployCore
	case ProgramStreetMedicine:
		return g.StreetMedicine
	case ProgramClinic:
		return g.Clinic
	case ProgramHealthFair:
		return g.HealthFair
	case ProgramNaloxoneDistribution:
		return g.NaloxoneDistribution
	case ProgramOraQuickDistribution:
		return g.OraQuickDistribution
	}
	return false
}

func (g *Gates) set(p Program) {
	switch p {
	case ProgramStreetMedicine:
		g.StreetMedicine = true
	case ProgramClinic:
		g.Clinic = true
	case ProgramHealthFair:
		g.HealthFair = true
	case ProgramNaloxoneDistribution:
		g.NaloxoneDistribution = true
	case ProgramOraQuickDistribution:
		g.OraQuickDistribution = true
	}
}

// Grant sets the flag for p and records it as a qualified event type.
func (g *Gates) Grant(p Program) {
	if !p.IsValid() || g.Allows(p) {
		return
	}
	g.set(p)
	g.QualifiedEventTypes = append(g.QualifiedEventTypes, p)
}
