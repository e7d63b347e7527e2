package poll

import "github.com/fwojciec/chatwatch"

// NewSuffix returns the messages of current that follow its overlap with
// previous.
//
// Offsets i into previous are tried in increasing order. The first i for
// which previous[i:] equals the head of current wins, so the longest overlap
// is preferred. The result is then everything in current after that head.
//
// The boolean is false when no offset matches. An empty previous never
// matches, so NewSuffix cannot be used to bootstrap from nothing. A true
// result with an empty suffix means current adds nothing.
//
// Neither input is modified and the result never shares memory with current.
func NewSuffix(previous, current chatwatch.Snapshot) (chatwatch.Snapshot, bool) {
	for i := range previous {
		n := len(previous) - i
		if n > len(current) {
			continue
		}
		if !chatwatch.Snapshot(previous[i:]).Equal(current[:n]) {
			continue
		}
		suffix := make(chatwatch.Snapshot, len(current)-n)
		copy(suffix, current[n:])
		return suffix, true
	}
	return nil, false
}
