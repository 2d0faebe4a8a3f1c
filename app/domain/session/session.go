package session

// LoadState tracks the identity fetch for the current credential. A credential
// may exist while the identity record is still loading; that is a valid
// intermediate state, not an error.
type LoadState string

const (
	LoadStateLoading LoadState = "loading"
	LoadStateError   LoadState = "error"
	LoadStateReady   LoadState = "ready"
)

// Identity is the authenticated principal as reported by the server. It is
// authoritative only when the surrounding snapshot's LoadState is ready.
type Identity struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
	PlanTier string `json:"plan"`
	Guest    bool   `json:"guest"`
}

// HomePath is where the principal lands when a route turns them away.
func (i Identity) HomePath() string {
	if i.IsAdmin {
		return AdminHomePath
	}
	return UserHomePath
}

const (
	LoginPath     = "/login"
	UserHomePath  = "/dashboard"
	AdminHomePath = "/admin"
)

// Snapshot is everything an access decision may look at. Callers assemble it
// fresh on every evaluation; nothing here survives between calls.
type Snapshot struct {
	CredentialPresent bool
	LoadState         LoadState
	Identity          *Identity
}
