package prefs

// Persisted flag keys. The names are part of the on-disk format; renaming one
// resets every user's choice.
const (
	// KeyOnboardingCompleted is written by the onboarding flow when the user
	// finishes it. Only the exact value "true" marks completion.
	KeyOnboardingCompleted = "onboarding-completed"

	// KeyInstallDismissed is written when the user declines the install
	// prompt. Any value marks "do not offer automatically again".
	KeyInstallDismissed = "pwa-install-dismissed"
)

// trueValue is the string encoding of a set boolean flag.
const trueValue = "true"

// IsTrue reports whether key holds exactly "true". A nil store reads as unset.
func IsTrue(s Store, key string) bool {
	if s == nil {
		return false
	}
	v, ok := s.Get(key)
	return ok && v == trueValue
}

// Present reports whether key holds any value. A nil store reads as unset.
func Present(s Store, key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Get(key)
	return ok
}

// SetTrue writes "true" under key.
func SetTrue(s Store, key string) error {
	if s == nil {
		return nil
	}
	return s.Set(key, trueValue)
}
