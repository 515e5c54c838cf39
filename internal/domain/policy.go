package domain

// ConflictPolicy decides whether a conflicting booking may still be written
type ConflictPolicy string

const (
	// ConflictPolicyStrict rejects every conflicting write
	ConflictPolicyStrict ConflictPolicy = "strict"
	// ConflictPolicyWarn rejects a conflicting write unless the caller acknowledged the conflicts
	ConflictPolicyWarn ConflictPolicy = "warn"
)

// Permits returns true if a write with conflicts may proceed
func (p ConflictPolicy) Permits(allowConflict bool) bool {
	return p == ConflictPolicyWarn && allowConflict
}
