package input

import "time"

// pressInfo records when a criteria/data combination was first observed
// held down.
type pressInfo struct {
	since time.Time
	input Input
}

// KeyboardState tracks which keys are currently held across translator
// batches so that, per spec §4.6, "held keys get synthetic Input events
// re-posted so that subsequent event-handler matches still see them" even
// on a cycle where the terminal didn't send a fresh byte for that key.
type KeyboardState struct {
	held map[byte]pressInfo
	prev map[byte]bool
}

// NewKeyboardState returns an empty tracker.
func NewKeyboardState() *KeyboardState {
	return &KeyboardState{held: make(map[byte]pressInfo), prev: make(map[byte]bool)}
}

// Observe records every Input in batch as newly (or still) held, stamping
// first-seen press time.
func (k *KeyboardState) Observe(batch []Input, now time.Time) {
	for _, in := range batch {
		if _, ok := k.held[in.Data]; !ok {
			k.held[in.Data] = pressInfo{since: now, input: in}
		} else {
			p := k.held[in.Data]
			p.input = in
			k.held[in.Data] = p
		}
	}
}

// Release drops data from the held set. The translator never calls it, and
// the byte-stream protocol spec §4.6 describes has no explicit key-up, so a
// key stays held until a caller releases it.
func (k *KeyboardState) Release(data byte) {
	delete(k.held, data)
}

// Synthesize returns one re-posted Input per currently held key, and
// advances the previous-frame snapshot to the current held set — "at the
// end of the batch the previous-frame state is replaced by the new one"
// (spec §4.6).
func (k *KeyboardState) Synthesize() []Input {
	out := make([]Input, 0, len(k.held))
	next := make(map[byte]bool, len(k.held))
	for data, p := range k.held {
		out = append(out, p.input)
		next[data] = true
	}
	k.prev = next
	return out
}

// JustPressed reports whether data transitioned from not-held to held
// between the previous and current snapshot.
func (k *KeyboardState) JustPressed(data byte) bool {
	_, held := k.held[data]
	return held && !k.prev[data]
}

// JustReleased reports whether data transitioned from held to not-held.
func (k *KeyboardState) JustReleased(data byte) bool {
	_, held := k.held[data]
	return !held && k.prev[data]
}

// PressedSince returns how long data has been continuously held, or false
// if it is not currently held.
func (k *KeyboardState) PressedSince(data byte, now time.Time) (time.Duration, bool) {
	p, ok := k.held[data]
	if !ok {
		return 0, false
	}
	return now.Sub(p.since), true
}
