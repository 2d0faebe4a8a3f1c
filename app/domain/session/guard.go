package session

// Requirement is the access level a route declares.
type Requirement string

const (
	RequireAuthenticated Requirement = "authenticated"
	RequireAdmin         Requirement = "admin"
)

func (r Requirement) metBy(identity Identity) bool {
	if r == RequireAdmin {
		return identity.IsAdmin
	}
	return true
}

type DecisionKind string

const (
	DecisionRender      DecisionKind = "render"
	DecisionShowLoading DecisionKind = "show-loading"
	DecisionRedirect    DecisionKind = "redirect"
)

// Decision is the guard's verdict. Redirect carries the target path only when
// Kind is DecisionRedirect.
type Decision struct {
	Kind     DecisionKind `json:"kind"`
	Redirect string       `json:"redirect,omitempty"`
}

// Decide maps a session snapshot and a route requirement to an access
// decision. It is a pure function: no memory of prior calls, so a revoked
// session can never leave a stale permission behind.
//
// No credential always redirects to login. With a credential, a loading
// identity renders a waiting state, a failed identity load redirects to
// login, and a loaded identity either renders or bounces to the principal's
// own home when the role falls short.
func Decide(snap Snapshot, requirement Requirement) Decision {
	if !snap.CredentialPresent {
		return Decision{Kind: DecisionRedirect, Redirect: LoginPath}
	}
	switch snap.LoadState {
	case LoadStateLoading:
		return Decision{Kind: DecisionShowLoading}
	case LoadStateError:
		return Decision{Kind: DecisionRedirect, Redirect: LoginPath}
	}
	if snap.Identity == nil {
		// ready with no identity record means the load never happened,
		// treated the same as a failed load
		return Decision{Kind: DecisionRedirect, Redirect: LoginPath}
	}
	if !requirement.metBy(*snap.Identity) {
		return Decision{Kind: DecisionRedirect, Redirect: snap.Identity.HomePath()}
	}
	return Decision{Kind: DecisionRender}
}
