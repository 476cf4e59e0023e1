package typeforge

import "sync"

// attachments associates arbitrary host values with finalized types, keyed by
// type identity. Finalized types may be registered from multiple goroutines,
// so the table is guarded by a single mutex. Entries live for the process
// lifetime; there is no teardown.
var (
	attachMu    sync.Mutex
	attachments = make(map[any]any)
)

// Attach associates value with the given finalized type identity, replacing
// any previous association. The key must be comparable; callers pass the
// finalized type handle itself.
func Attach(key, value any) {
	attachMu.Lock()
	defer attachMu.Unlock()
	attachments[key] = value
}

// Attachment returns the value associated with the given type identity.
func Attachment(key any) (any, bool) {
	attachMu.Lock()
	defer attachMu.Unlock()
	v, ok := attachments[key]
	return v, ok
}

// Detach removes the association for the given type identity and reports
// whether one existed.
func Detach(key any) bool {
	attachMu.Lock()
	defer attachMu.Unlock()
	_, ok := attachments[key]
	delete(attachments, key)
	return ok
}
