package auth

// Evaluate applies the role policy for a principal's stored record.
//
// The record's role column is the single source of authorization truth.
// (The system this replaces also compared user emails against a
// hard-coded address on a few endpoints; that check was inconsistent
// with the role table and is intentionally not implemented.)
//
// A nil record means no users row exists for the principal; that is a
// plain deny, not an error to repair. Officers do not inherit admin.
func Evaluate(record *UserRecord, required Role) Decision {
	if record == nil {
		return DecisionDeny
	}
	if record.Role == required {
		return DecisionAllow
	}
	return DecisionDeny
}
