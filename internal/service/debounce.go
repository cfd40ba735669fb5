package service

import (
	"sync"
	"time"

	"tender-drafting-api/internal/entity"
)

// debouncedSaver collapses a burst of tender snapshots into one remote write.
// It owns a single pending payload and a single timer: every Trigger replaces
// the payload and restarts the timer, so after a burst only the latest
// accumulated state is sent, one quiet interval after the last edit.
//
// The saver is bound to one save function for its whole life. When the save
// function's target changes (a reload swapped the list in), the owner must
// stop this saver and create a new one.
type debouncedSaver struct {
	mu      sync.Mutex
	wait    time.Duration
	save    func(entity.TenderProcess)
	timer   *time.Timer
	pending *entity.TenderProcess
	stopped bool
}

func newDebouncedSaver(wait time.Duration, save func(entity.TenderProcess)) *debouncedSaver {
	return &debouncedSaver{wait: wait, save: save}
}

// Trigger schedules a save of the given snapshot, replacing any pending one.
// The snapshot carries its own tender id, so a save that fires after the user
// moved elsewhere still writes to the tender it was captured from.
func (d *debouncedSaver) Trigger(snapshot entity.TenderProcess) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = &snapshot
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fire)
}

func (d *debouncedSaver) fire() {
	d.mu.Lock()
	snapshot := d.pending
	d.pending = nil
	d.mu.Unlock()

	if snapshot != nil {
		d.save(*snapshot)
	}
}

// Flush sends any pending snapshot immediately. Used on shutdown so the last
// burst of edits is not lost to the debounce window.
func (d *debouncedSaver) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	snapshot := d.pending
	d.pending = nil
	d.mu.Unlock()

	if snapshot != nil {
		d.save(*snapshot)
	}
}

// Stop cancels any pending save and refuses further triggers.
func (d *debouncedSaver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
}
