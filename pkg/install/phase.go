package install

// Phase is where the presenter is in the install lifecycle.
type Phase int

const (
	PhaseUnavailable Phase = iota
	PhaseCaptured
	PhasePromptPending
	PhaseVisible
	PhaseAccepted
	PhaseDeclined
	PhaseAlreadyInstalled
)

var phaseNames = [...]string{
	PhaseUnavailable:      "unavailable",
	PhaseCaptured:         "captured",
	PhasePromptPending:    "prompt-pending",
	PhaseVisible:          "visible",
	PhaseAccepted:         "accepted",
	PhaseDeclined:         "declined",
	PhaseAlreadyInstalled: "already-installed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}
