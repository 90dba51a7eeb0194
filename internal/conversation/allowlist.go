package conversation

// Allowlist answers whether a user may run the intake flow. The set is
// loaded once at startup and read-only for the life of the process.
type Allowlist interface {
	IsAuthorized(userID string) bool
}

// StaticAllowlist is the configuration-backed membership set.
type StaticAllowlist map[string]struct{}

func NewStaticAllowlist(userIDs []string) StaticAllowlist {
	set := make(StaticAllowlist, len(userIDs))
	for _, id := range userIDs {
		set[id] = struct{}{}
	}
	return set
}

func (a StaticAllowlist) IsAuthorized(userID string) bool {
	_, ok := a[userID]
	return ok
}
