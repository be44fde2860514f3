package reminder

// Ledger is the set of reminder keys that have already fired.
type Ledger map[string]struct{}

// NewLedger returns a ledger holding keys.
func NewLedger(keys ...string) Ledger {
	l := make(Ledger, len(keys))
	l.Add(keys...)
	return l
}

// Has reports whether key has fired.
func (l Ledger) Has(key string) bool {
	_, ok := l[key]
	return ok
}

// Add marks keys as fired.
func (l Ledger) Add(keys ...string) {
	for _, k := range keys {
		l[k] = struct{}{}
	}
}
