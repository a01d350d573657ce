package install

// Tracker holds the captured capability and the installed state.
type Tracker struct {
	token     Capability
	installed bool
}

// Capture stores c in place of any earlier capability. It refuses once the
// app is installed.
func (t *Tracker) Capture(c Capability) bool {
	if t.installed || c == nil {
		return false
	}
	t.token = c
	return true
}

// Token returns the held capability, or nil.
func (t *Tracker) Token() Capability {
	return t.token
}

// Holds reports whether c is the capability currently held.
func (t *Tracker) Holds(c Capability) bool {
	return t.token != nil && t.token == c
}

// Usable reports whether the held capability can still be invoked.
func (t *Tracker) Usable() bool {
	return t.token != nil && !t.installed && t.token.Valid()
}

// Clear drops the held capability.
func (t *Tracker) Clear() {
	t.token = nil
}

// MarkInstalled records installation and drops the capability.
func (t *Tracker) MarkInstalled() {
	t.installed = true
	t.token = nil
}

// Installed reports whether installation has been observed.
func (t *Tracker) Installed() bool {
	return t.installed
}
