package refraction

import "log/slog"

// observerEntry pairs a camera with the list installed on it. The camera
// pointer is only dereferenced after a liveness check.
type observerEntry struct {
	cam  *Camera
	list *CommandList
}

// observerRegistry tracks, per observing camera, the command list the effect
// installed on it. It holds at most one entry per camera ID. Cameras are
// owned elsewhere and may be disposed at any time; a disposed camera is
// treated as absent and is never touched again.
type observerRegistry struct {
	stage   Stage
	entries map[uint32]observerEntry
}

func newObserverRegistry(stage Stage) *observerRegistry {
	return &observerRegistry{
		stage:   stage,
		entries: make(map[uint32]observerEntry),
	}
}

// has reports whether a list is installed on cam. Nil and disposed cameras
// are never registered.
func (r *observerRegistry) has(cam *Camera) bool {
	if !alive(cam) {
		return false
	}
	e, ok := r.entries[cam.ID()]
	return ok && e.cam == cam
}

// install records the pairing and attaches list to cam. The caller checks
// has(cam) first; installing on a dead camera does nothing.
func (r *observerRegistry) install(cam *Camera, list *CommandList) {
	if !alive(cam) || list == nil {
		return
	}
	cam.AddCommandList(r.stage, list)
	r.entries[cam.ID()] = observerEntry{cam: cam, list: list}
	Logger().Debug("command list installed",
		slog.String("list", list.Name), slog.Uint64("camera", uint64(cam.ID())), slog.String("stage", r.stage.String()))
}

// teardownAll detaches every list from the cameras still alive and clears
// the registry. Dead cameras are dropped silently. It returns how many
// lists were detached.
func (r *observerRegistry) teardownAll() int {
	detached := 0
	for id, e := range r.entries {
		if alive(e.cam) {
			e.cam.RemoveCommandList(r.stage, e.list)
			detached++
		}
		delete(r.entries, id)
	}
	return detached
}

// commandList returns the list installed on cam, or nil.
func (r *observerRegistry) commandList(cam *Camera) *CommandList {
	if !r.has(cam) {
		return nil
	}
	return r.entries[cam.ID()].list
}

// size returns the number of entries, live or not.
func (r *observerRegistry) size() int {
	return len(r.entries)
}
