package config

// Plan limits are static product configuration consumed by the
// translate and document handlers. The guest plan applies to
// unauthenticated callers identified by IP.
type Plan struct {
	Name            string `json:"name"`
	CharLimit       int    `json:"char_limit"`
	RequestsPerDay  int    `json:"requests_per_day"`
	MaxDocumentSize int64  `json:"max_document_size"` // bytes, 0 = documents not included
}

const (
	PlanGuest   = "guest"
	PlanFree    = "free"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

var Plans = map[string]Plan{
	PlanGuest:   {Name: PlanGuest, CharLimit: 500, RequestsPerDay: 5},
	PlanFree:    {Name: PlanFree, CharLimit: 1000, RequestsPerDay: 10, MaxDocumentSize: 1 << 20},
	PlanPro:     {Name: PlanPro, CharLimit: 3000, RequestsPerDay: 100, MaxDocumentSize: 5 << 20},
	PlanPremium: {Name: PlanPremium, CharLimit: 10000, RequestsPerDay: 1000, MaxDocumentSize: 20 << 20},
}

// GetPlan resolves a plan name from a users row, falling back to the
// free tier for names this build does not know.
func GetPlan(name string) Plan {
	if plan, ok := Plans[name]; ok {
		return plan
	}
	return Plans[PlanFree]
}
