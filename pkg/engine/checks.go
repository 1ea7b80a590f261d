package engine

// Check represents one atomic verification with the score it contributes
// when it passes.
type Check struct {
	Name        string // unique identifier
	Description string // human-readable summary
	Impact      int    // score awarded when the check passes
}

// Check names, referenced by the orchestrator and the tests.
const (
	CheckNoVisualImpersonation = "NoVisualImpersonation"
	CheckDomainAuthorized      = "DomainAuthorized"
	CheckURLHeuristicsClean    = "URLHeuristicsClean"
	CheckTextClassifierClean   = "TextClassifierClean"
	CheckURLClassifierClean    = "URLClassifierClean"
)

// AllChecks is the full list of checks the orchestrator can award points
// for. The score is a trust score: higher means more legitimate.
var AllChecks = []Check{
	{
		Name:        CheckNoVisualImpersonation,
		Description: "Screenshot does not visually match a brand it has no right to",
		Impact:      30,
	},
	{
		Name:        CheckDomainAuthorized,
		Description: "Visited domain is the registered owner of the matched visual identity",
		Impact:      30,
	},
	{
		Name:        CheckURLHeuristicsClean,
		Description: "Structural URL features show no phishing indicators",
		Impact:      20,
	},
	{
		Name:        CheckTextClassifierClean,
		Description: "External text classifier labels the message legitimate",
		Impact:      10,
	},
	{
		Name:        CheckURLClassifierClean,
		Description: "External URL classifier labels the URL benign",
		Impact:      10,
	},
}

// MaxScore returns the highest achievable trust score.
func MaxScore() int {
	total := 0
	for _, c := range AllChecks {
		if c.Impact > 0 {
			total += c.Impact
		}
	}
	return total
}

func checkByName(name string) Check {
	for _, c := range AllChecks {
		if c.Name == name {
			return c
		}
	}
	return Check{Name: name}
}
