package resource

import (
	"strconv"
	"strings"
)

// KeyVersion prefixes every rendered key so a format change can coexist with
// entries persisted by an older build.
const KeyVersion = "v1"

// Key identifies one cached resource. Kind selects the category and Args pin
// the concrete instance (an id, paging arguments). A Key with fewer Args than
// another of the same Kind acts as a prefix and matches it, which is how bulk
// invalidation of "every page of a listing" works.
type Key struct {
	Kind Kind
	Args []string
}

func NewKey(kind Kind, args ...string) Key {
	return Key{Kind: kind, Args: args}
}

// String renders the versioned storage form, e.g. "v1:job:j_123".
func (k Key) String() string {
	parts := make([]string, 0, len(k.Args)+2)
	parts = append(parts, KeyVersion, string(k.Kind))
	parts = append(parts, k.Args...)
	return strings.Join(parts, ":")
}

func (k Key) Equal(other Key) bool {
	if k.Kind != other.Kind || len(k.Args) != len(other.Args) {
		return false
	}
	for i := range k.Args {
		if k.Args[i] != other.Args[i] {
			return false
		}
	}
	return true
}

// Matches reports whether prefix covers this key: same kind and every arg of
// the prefix equal to the corresponding arg here. A bare-kind prefix matches
// all keys of that kind.
func (k Key) Matches(prefix Key) bool {
	if k.Kind != prefix.Kind || len(prefix.Args) > len(k.Args) {
		return false
	}
	for i := range prefix.Args {
		if k.Args[i] != prefix.Args[i] {
			return false
		}
	}
	return true
}

func JobKey(jobID string) Key {
	return NewKey(KindJob, jobID)
}

func JobListKey(page, pageSize int) Key {
	return NewKey(KindJobList, strconv.Itoa(page), strconv.Itoa(pageSize))
}

func JobResultKey(jobID string) Key {
	return NewKey(KindJobResult, jobID)
}

func IdentityKey() Key {
	return NewKey(KindIdentity)
}

func GuestUsageKey() Key {
	return NewKey(KindGuestUsage)
}

func TemplateKey(templateID string) Key {
	return NewKey(KindTemplate, templateID)
}

func TemplateListKey() Key {
	return NewKey(KindTemplateList)
}

func AdminUserKey(userID string) Key {
	return NewKey(KindAdminUser, userID)
}

func AdminUserListKey(page, pageSize int) Key {
	return NewKey(KindAdminUserList, strconv.Itoa(page), strconv.Itoa(pageSize))
}

func AdminStatsKey() Key {
	return NewKey(KindAdminStats)
}

func AuditListKey(page, pageSize int) Key {
	return NewKey(KindAuditList, strconv.Itoa(page), strconv.Itoa(pageSize))
}

func ServiceHealthKey() Key {
	return NewKey(KindServiceHealth)
}
