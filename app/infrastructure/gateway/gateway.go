package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"resty.dev/v3"

	"docurio.ai/docurio-client/app/domain/common"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/infrastructure/credentials"
	"docurio.ai/docurio-client/app/utils/contextkeys"
	"docurio.ai/docurio-client/app/utils/httpclients"
	"docurio.ai/docurio-client/config/environment_variables"
)

const (
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// Gateway is the single place requests to the Docurio API are issued from.
// It classifies failures but never retries and never touches the cache;
// committing an outcome is the caller's job.
type Gateway struct {
	client *resty.Client
	creds  credentials.Store
}

func NewGateway(creds credentials.Store) *Gateway {
	baseURL := environment_variables.EnvironmentVariables.API_BASE_URL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return NewGatewayWithBaseURL(creds, baseURL)
}

func NewGatewayWithBaseURL(creds credentials.Store, baseURL string) *Gateway {
	client := httpclients.NewClient("docurio-api").SetBaseURL(baseURL)
	return &Gateway{
		client: client,
		creds:  creds,
	}
}

// Fetch performs the GET for one cache key and returns the raw resource
// representation.
func (g *Gateway) Fetch(ctx context.Context, key resource.Key) (json.RawMessage, error) {
	path, query, err := endpointFor(key)
	if err != nil {
		return nil, err
	}
	req := g.client.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID(ctx))
	authed := g.attachCredential(req)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, &common.ApiError{Kind: common.KindNetwork, Err: err}
	}
	if resp.IsSuccess() {
		return json.RawMessage(resp.Bytes()), nil
	}
	return nil, classify(resp, authed)
}

// Mutate performs one write operation. Every call carries a fresh idempotency
// key so the server can de-duplicate an accidental resubmission.
func (g *Gateway) Mutate(ctx context.Context, kind mutation.Kind, payload any) (json.RawMessage, error) {
	route, err := routeFor(kind, payload)
	if err != nil {
		return nil, err
	}
	req := g.client.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID(ctx)).
		SetHeader(HeaderIdempotencyKey, uuid.NewString())
	authed := g.attachCredential(req)
	if route.body != nil {
		req.SetBody(route.body)
	}
	resp, err := req.Execute(route.method, route.path)
	if err != nil {
		return nil, &common.ApiError{Kind: common.KindNetwork, Err: err}
	}
	if resp.IsSuccess() {
		return json.RawMessage(resp.Bytes()), nil
	}
	return nil, classify(resp, authed)
}

// attachCredential adds the Authorization header when a credential exists and
// reports whether the request goes out authenticated.
func (g *Gateway) attachCredential(req *resty.Request) bool {
	cred, err := g.creds.Load()
	if err != nil || !cred.Present() {
		return false
	}
	req.SetHeader("Authorization", cred.AuthorizationValue())
	return true
}

// classify turns a non-2xx response into an ApiError. A 401 counts as an
// expired session only when the request actually carried a credential; a 401
// on an anonymous call is an ordinary client error.
func classify(resp *resty.Response, authed bool) error {
	status := resp.StatusCode()
	var body struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	_ = json.Unmarshal(resp.Bytes(), &body)
	message := body.Error
	if message == "" {
		message = http.StatusText(status)
	}
	kind := common.KindServer
	switch {
	case status == http.StatusUnauthorized && authed:
		kind = common.KindAuthExpired
	case status >= 400 && status < 500:
		kind = common.KindClient
	}
	return &common.ApiError{
		Kind:   kind,
		Status: status,
		Code:   body.Code,
		Err:    errors.New(message),
	}
}

func requestID(ctx context.Context) string {
	if v, ok := ctx.Value(contextkeys.RequestId{}).(string); ok && v != "" {
		return v
	}
	return uuid.NewString()
}
