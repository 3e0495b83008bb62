package domain

// Section is one of the fixed Theory-of-Change sections. The set is closed:
// payload keys outside it are ignored by merging and validation.
type Section string

const (
	SectionGoal            Section = "goal"
	SectionAim             Section = "aim"
	SectionObjectives      Section = "objectives"
	SectionBeneficiaries   Section = "beneficiaries"
	SectionActivities      Section = "activities"
	SectionOutcomes        Section = "outcomes"
	SectionExternalFactors Section = "externalFactors"
	SectionEvidenceLinks   Section = "evidenceLinks"
)

// Sections returns all sections in canonical order.
func Sections() []Section {
	return []Section{
		SectionGoal,
		SectionAim,
		SectionObjectives,
		SectionBeneficiaries,
		SectionActivities,
		SectionOutcomes,
		SectionExternalFactors,
		SectionEvidenceLinks,
	}
}

// ParseSection returns the Section for name, or false if name is not a known section.
func ParseSection(name string) (Section, bool) {
	switch Section(name) {
	case SectionGoal, SectionAim, SectionObjectives, SectionBeneficiaries,
		SectionActivities, SectionOutcomes, SectionExternalFactors, SectionEvidenceLinks:
		return Section(name), true
	}
	return "", false
}
