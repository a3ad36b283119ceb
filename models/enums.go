package models

// Periodicity is the recurrence unit of a template's reporting obligation.
type Periodicity string

const (
	PeriodicityMonthly    Periodicity = "monthly"
	PeriodicityQuarterly  Periodicity = "quarterly"
	PeriodicityHalfYearly Periodicity = "half_yearly"
	PeriodicityYearly     Periodicity = "yearly"
)

// Months returns the length of one period in months. Unknown values are a
// programming error and panic.
func (p Periodicity) Months() int {
	switch p {
	case PeriodicityMonthly:
		return 1
	case PeriodicityQuarterly:
		return 3
	case PeriodicityHalfYearly:
		return 6
	case PeriodicityYearly:
		return 12
	default:
		panic("models: unknown periodicity " + string(p))
	}
}

// Valid reports whether p is one of the four known periodicities.
func (p Periodicity) Valid() bool {
	switch p {
	case PeriodicityMonthly, PeriodicityQuarterly, PeriodicityHalfYearly, PeriodicityYearly:
		return true
	}
	return false
}

// ReportCategory classifies a template for reviewer fan-out.
type ReportCategory string

const (
	CategoryPlan       ReportCategory = "plan"
	CategoryAccounting ReportCategory = "accounting"
)

// ReviewerRole returns the system role that reviews templates of this
// category, or "" when no role-level fan-out applies.
func (c ReportCategory) ReviewerRole() string {
	switch c {
	case CategoryPlan:
		return RolePEB
	case CategoryAccounting:
		return RoleOBUnF
	}
	return ""
}

// ReportStatus is the review state of a deadline and its linked report.
type ReportStatus string

const (
	StatusInProgress      ReportStatus = "in_progress"
	StatusDraft           ReportStatus = "draft"
	StatusNeedsCorrection ReportStatus = "needs_correction"
	StatusReviewed        ReportStatus = "reviewed"
)

// statusTransitions is the closed set of legal review transitions:
// upload, correction request, acceptance, re-upload and reopen.
var statusTransitions = map[ReportStatus][]ReportStatus{
	StatusInProgress:      {StatusDraft},
	StatusDraft:           {StatusNeedsCorrection, StatusReviewed},
	StatusNeedsCorrection: {StatusDraft},
	StatusReviewed:        {StatusNeedsCorrection},
}

// CanTransitionTo reports whether moving from s to next is a legal review
// transition.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Display returns the human-readable label shown in pending/archive views.
func (s ReportStatus) Display() string {
	switch s {
	case StatusInProgress:
		return "In progress"
	case StatusDraft:
		return "Draft"
	case StatusNeedsCorrection:
		return "Needs correction"
	case StatusReviewed:
		return "Accepted"
	}
	return string(s)
}
