package resource

import "time"

// Kind names a category of server data. It is the first component of every
// cache key and selects the freshness window for entries of that category.
type Kind string

const (
	KindJob           Kind = "job"
	KindJobList       Kind = "job-list"
	KindJobResult     Kind = "job-result"
	KindIdentity      Kind = "identity"
	KindGuestUsage    Kind = "guest-usage"
	KindTemplate      Kind = "template"
	KindTemplateList  Kind = "template-list"
	KindAdminUser     Kind = "admin-user"
	KindAdminUserList Kind = "admin-user-list"
	KindAdminStats    Kind = "admin-stats"
	KindAuditList     Kind = "audit-list"
	KindServiceHealth Kind = "service-health"
)

// freshFor is the per-kind freshness window. A zero duration means the kind is
// always considered stale and re-fetched on every read. Job-shaped kinds are
// always stale: their truth lives server-side and changes without notice.
var freshFor = map[Kind]time.Duration{
	KindJob:           0,
	KindJobList:       0,
	KindJobResult:     0,
	KindIdentity:      5 * time.Minute,
	KindGuestUsage:    30 * time.Second,
	KindTemplate:      10 * time.Minute,
	KindTemplateList:  10 * time.Minute,
	KindAdminUser:     time.Minute,
	KindAdminUserList: time.Minute,
	KindAdminStats:    30 * time.Second,
	KindAuditList:     time.Minute,
	KindServiceHealth: 15 * time.Second,
}

// FreshFor returns how long an entry of the given kind stays fresh after a
// write. Unknown kinds get zero, i.e. always stale.
func FreshFor(kind Kind) time.Duration {
	return freshFor[kind]
}
