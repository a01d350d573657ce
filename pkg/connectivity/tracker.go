package connectivity

import (
	"time"

	"gitlab.com/tinyland/lab/daybook/pkg/collectors"
)

// Sample is one reachability reading produced by a probe.
type Sample struct {
	Online bool
	Source string
	Detail string
}

// Tracker converts reachability samples into transitions. The first usable
// sample only establishes a baseline unless the tracker was seeded.
type Tracker struct {
	known  bool
	online bool
}

// Seed sets the baseline without producing a transition.
func (t *Tracker) Seed(online bool) {
	t.known = true
	t.online = online
}

// Observe feeds one collector update into the tracker. It reports a
// transition when the sample differs from the previous one. Failed or
// foreign samples are ignored.
func (t *Tracker) Observe(u collectors.Update) (ChangedMsg, bool) {
	if u.Error != nil {
		return ChangedMsg{}, false
	}
	s, ok := u.Data.(Sample)
	if !ok {
		return ChangedMsg{}, false
	}

	if !t.known {
		t.Seed(s.Online)
		return ChangedMsg{}, false
	}
	if s.Online == t.online {
		return ChangedMsg{}, false
	}
	t.online = s.Online

	at := u.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	return ChangedMsg{Online: s.Online, At: at}, true
}

// Online returns the baseline and whether one has been established.
func (t *Tracker) Online() (online, known bool) {
	return t.online, t.known
}
