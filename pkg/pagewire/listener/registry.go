// Package listener tracks every event subscription the behavior layer
// makes, so teardown can unwind them all without each feature keeping
// its own bookkeeping.
package listener

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
)

// Record is one tracked listener registration.
type Record struct {
	// ID is a stable identifier for logging and individual removal.
	ID string

	// Target is the element the listener is attached to.
	Target *dom.Element

	// Type is the event type.
	Type string

	// ListenerID is the dom-level handle used to detach.
	ListenerID dom.ListenerID

	// Options are the listener options used at registration.
	Options dom.ListenerOptions
}

// Registry owns the add side and the bulk-removal side of listener
// lifecycle. One registry per session; every feature registers through
// it. Not safe for concurrent use.
type Registry struct {
	logger  *slog.Logger
	records []Record
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Add attaches handler to target and tracks the registration. A nil
// target is a logged no-op returning an empty id: features probe for
// optional elements and absence must not require caller-side guards.
func (r *Registry) Add(target *dom.Element, typ string, handler dom.Handler, opts dom.ListenerOptions) string {
	if target == nil {
		r.logDebug("listener add skipped, nil target", "type", typ)
		return ""
	}

	listenerID := target.AddEventListener(typ, handler, opts)
	rec := Record{
		ID:         fmt.Sprintf("lst-%s", uuid.New().String()[:8]),
		Target:     target,
		Type:       typ,
		ListenerID: listenerID,
		Options:    opts,
	}
	r.records = append(r.records, rec)
	r.logDebug("listener added", "id", rec.ID, "type", typ)
	return rec.ID
}

// Remove detaches one tracked listener by record id.
func (r *Registry) Remove(id string) bool {
	for i, rec := range r.records {
		if rec.ID == id {
			rec.Target.RemoveEventListener(rec.Type, rec.ListenerID)
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll detaches every tracked listener. A failing removal is
// logged and does not stop the sweep, and the registry is cleared
// unconditionally so a partial failure cannot strand stale records.
// Calling RemoveAll on an empty registry is a no-op.
func (r *Registry) RemoveAll() {
	if len(r.records) == 0 {
		return
	}

	removed := 0
	for _, rec := range r.records {
		if err := r.removeRecord(rec); err != nil {
			r.logWarn("listener removal failed", "id", rec.ID, "type", rec.Type, "error", err)
			continue
		}
		removed++
	}

	r.records = nil
	r.logDebug("listeners removed", "count", removed)
}

// removeRecord detaches one record, converting a panicking target into
// an error so one bad element cannot abort the sweep.
func (r *Registry) removeRecord(rec Record) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("remove panicked: %v", rec)
		}
	}()
	rec.Target.RemoveEventListener(rec.Type, rec.ListenerID)
	return nil
}

// Len reports the number of tracked listeners.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns a copy of the tracked records, for inspection.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

func (r *Registry) logDebug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *Registry) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
