package gateway

import (
	"fmt"
	"net/http"

	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/resource"
)

// endpointFor maps a cache key to the GET endpoint serving that resource.
func endpointFor(key resource.Key) (string, map[string]string, error) {
	switch key.Kind {
	case resource.KindJob:
		if len(key.Args) == 0 {
			return "", nil, fmt.Errorf("job key missing id")
		}
		return "/v1/jobs/" + key.Args[0], nil, nil
	case resource.KindJobList:
		return "/v1/jobs", pagingQuery(key.Args), nil
	case resource.KindJobResult:
		if len(key.Args) == 0 {
			return "", nil, fmt.Errorf("job result key missing id")
		}
		return "/v1/jobs/" + key.Args[0] + "/result", nil, nil
	case resource.KindIdentity:
		return "/v1/auth/me", nil, nil
	case resource.KindGuestUsage:
		return "/v1/usage/guest", nil, nil
	case resource.KindTemplate:
		if len(key.Args) == 0 {
			return "", nil, fmt.Errorf("template key missing id")
		}
		return "/v1/templates/" + key.Args[0], nil, nil
	case resource.KindTemplateList:
		return "/v1/templates", nil, nil
	case resource.KindAdminUser:
		if len(key.Args) == 0 {
			return "", nil, fmt.Errorf("admin user key missing id")
		}
		return "/v1/admin/users/" + key.Args[0], nil, nil
	case resource.KindAdminUserList:
		return "/v1/admin/users", pagingQuery(key.Args), nil
	case resource.KindAdminStats:
		return "/v1/admin/stats", nil, nil
	case resource.KindAuditList:
		return "/v1/admin/audit-logs", pagingQuery(key.Args), nil
	case resource.KindServiceHealth:
		return "/health-check", nil, nil
	}
	return "", nil, fmt.Errorf("no endpoint for resource kind %q", key.Kind)
}

// pagingQuery turns list-key args [page, limit] into query parameters.
func pagingQuery(args []string) map[string]string {
	q := map[string]string{}
	if len(args) > 0 && args[0] != "" {
		q["page"] = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		q["limit"] = args[1]
	}
	return q
}

type mutationRoute struct {
	method string
	path   string
	body   any
}

// routeFor maps a mutation kind and its payload to method, path and body.
func routeFor(kind mutation.Kind, payload any) (mutationRoute, error) {
	switch kind {
	case mutation.KindJobCreate:
		p, ok := payload.(mutation.CreateJobPayload)
		if !ok {
			return mutationRoute{}, payloadTypeError(kind, payload)
		}
		return mutationRoute{http.MethodPost, "/v1/jobs", p}, nil
	case mutation.KindJobCancel:
		p, ok := payload.(mutation.CancelJobPayload)
		if !ok || p.JobID == "" {
			return mutationRoute{}, payloadTypeError(kind, payload)
		}
		return mutationRoute{http.MethodPost, "/v1/jobs/" + p.JobID + "/cancel", nil}, nil
	case mutation.KindJobDelete:
		p, ok := payload.(mutation.DeleteJobPayload)
		if !ok || p.JobID == "" {
			return mutationRoute{}, payloadTypeError(kind, payload)
		}
		return mutationRoute{http.MethodDelete, "/v1/jobs/" + p.JobID, nil}, nil
	case mutation.KindUserUpdate:
		p, ok := payload.(mutation.UpdateUserPayload)
		if !ok || p.UserID == "" {
			return mutationRoute{}, payloadTypeError(kind, payload)
		}
		return mutationRoute{http.MethodPatch, "/v1/admin/users/" + p.UserID, p}, nil
	case mutation.KindTemplateCreate:
		p, ok := payload.(mutation.CreateTemplatePayload)
		if !ok {
			return mutationRoute{}, payloadTypeError(kind, payload)
		}
		return mutationRoute{http.MethodPost, "/v1/templates", p}, nil
	case mutation.KindTemplateUpdate:
		p, ok := payload.(mutation.UpdateTemplatePayload)
		if !ok || p.TemplateID == "" {
			return mutationRoute{}, payloadTypeError(kind, payload)
		}
		return mutationRoute{http.MethodPatch, "/v1/templates/" + p.TemplateID, p}, nil
	case mutation.KindTemplateDelete:
		p, ok := payload.(mutation.DeleteTemplatePayload)
		if !ok || p.TemplateID == "" {
			return mutationRoute{}, payloadTypeError(kind, payload)
		}
		return mutationRoute{http.MethodDelete, "/v1/templates/" + p.TemplateID, nil}, nil
	}
	return mutationRoute{}, fmt.Errorf("unsupported mutation kind %q", kind)
}

func payloadTypeError(kind mutation.Kind, payload any) error {
	return fmt.Errorf("invalid payload %T for mutation %q", payload, kind)
}
