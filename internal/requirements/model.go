package requirements

// Category classifies what kind of need a requirement expresses.
type Category string

const (
	CategoryFunctional  Category = "functional"
	CategoryTechnical   Category = "technical"
	CategoryIntegration Category = "integration"
	CategoryPerformance Category = "performance"
	CategorySecurity    Category = "security"
)

// Priority ranks how hard a requirement binds the engagement.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Requirement is a single extracted need. Instances are immutable once
// returned; keywords are derived from the description and are never empty
// for an accepted requirement.
type Requirement struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
	Keywords    []string `json:"keywords"`
}
