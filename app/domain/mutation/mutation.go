package mutation

import (
	"docurio.ai/docurio-client/app/domain/resource"
)

// Kind names one write operation against the platform.
type Kind string

const (
	KindJobCreate      Kind = "job.create"
	KindJobCancel      Kind = "job.cancel"
	KindJobDelete      Kind = "job.delete"
	KindUserUpdate     Kind = "user.update"
	KindTemplateCreate Kind = "template.create"
	KindTemplateUpdate Kind = "template.update"
	KindTemplateDelete Kind = "template.delete"
)

// Invalidations is the static dependency map from a successful mutation to
// the cache-key prefixes it makes stale. subjectID pins the affected record
// (job id, user id, template id); for creates it is the id of the record the
// server just returned. Detail keys are skipped when no subject is known.
func Invalidations(kind Kind, subjectID string) []resource.Key {
	switch kind {
	case KindJobCreate:
		return []resource.Key{
			resource.NewKey(resource.KindJobList),
		}
	case KindJobCancel, KindJobDelete:
		keys := []resource.Key{
			resource.NewKey(resource.KindJobList),
		}
		if subjectID != "" {
			keys = append(keys, resource.JobKey(subjectID), resource.JobResultKey(subjectID))
		}
		return keys
	case KindUserUpdate:
		keys := []resource.Key{
			resource.NewKey(resource.KindAdminUserList),
			resource.AdminStatsKey(),
		}
		if subjectID != "" {
			keys = append(keys, resource.AdminUserKey(subjectID))
		}
		return keys
	case KindTemplateCreate, KindTemplateUpdate, KindTemplateDelete:
		keys := []resource.Key{
			resource.NewKey(resource.KindTemplateList),
		}
		if subjectID != "" {
			keys = append(keys, resource.TemplateKey(subjectID))
		}
		return keys
	}
	return nil
}
