package engine

import (
	"cmp"
	"slices"
)

// Handle is an entity's stable arena index, assigned on spawn and never reused
type Handle int

// InvalidHandle marks an entity that was never spawned
const InvalidHandle Handle = -1

// Directory owns the live entity set and the pending spawn/destroy queues
//
// Spawn and Destroy only queue requests; membership changes happen in Resolve,
// which the frame loop calls once at the top of every frame. The live slice is
// rebuilt rather than edited in place, so a slice returned by Live stays
// valid for the whole frame even if requests arrive mid-dispatch
type Directory struct {
	arena   []*Entity // index = Handle, nil once destroyed
	live    []*Entity // sorted by (priority, handle)
	spawns  []*Entity // sorted by (priority, request order)
	destroy []*Entity // sorted by (priority, request order)

	log Logger
}

func NewDirectory(log Logger) *Directory {
	if log == nil {
		log = NopLogger{}
	}
	return &Directory{log: log}
}

// Spawn queues e to enter play at the next Resolve
// Returns false if e was already spawned
func (d *Directory) Spawn(e *Entity) bool {
	if e.state != StateConstructed {
		d.log.Debug("spawn rejected", "entity", e.String(), "state", e.state.String())
		return false
	}
	e.handle = Handle(len(d.arena))
	d.arena = append(d.arena, e)
	e.state = StateSpawnPending
	d.spawns = insertByPriority(d.spawns, e)
	return true
}

// Destroy queues e to exit play at the next Resolve
// Returns false for entities never spawned, already destroyed, or already queued
func (d *Directory) Destroy(e *Entity) bool {
	switch {
	case e.destroyRequested:
		d.log.Debug("destroy ignored, already requested", "entity", e.String())
		return false
	case e.state == StateConstructed || e.state == StateDestroyed:
		d.log.Debug("destroy rejected", "entity", e.String(), "state", e.state.String())
		return false
	}
	e.destroyRequested = true
	if e.state == StateInPlay {
		e.state = StateExitPending
	}
	d.destroy = insertByPriority(d.destroy, e)
	return true
}

// Resolve applies queued spawns (enterPlay) then queued destroys (exitPlay)
// Returns the number of entities that entered and exited play
func (d *Directory) Resolve() (spawned, destroyed int) {
	if len(d.spawns) == 0 && len(d.destroy) == 0 {
		return 0, 0
	}

	spawns := d.spawns
	d.spawns = nil
	if len(spawns) > 0 {
		live := slices.Clone(d.live)
		for _, e := range spawns {
			live = insertLive(live, e)
		}
		d.live = live
		for _, e := range spawns {
			e.enterPlay()
			d.log.Debug("entity spawned", "entity", e.String(), "id", e.id.String())
		}
		spawned = len(spawns)
	}

	// Destroys requested by enterPlay hooks above are picked up here,
	// spawns they request wait for the next Resolve
	destroys := d.destroy
	d.destroy = nil
	if len(destroys) > 0 {
		live := slices.Clone(d.live)
		for _, e := range destroys {
			idx := slices.Index(live, e)
			if idx < 0 {
				continue
			}
			live = slices.Delete(live, idx, idx+1)
		}
		d.live = live
		for _, e := range destroys {
			e.exitPlay()
			d.arena[e.handle] = nil
			d.log.Debug("entity destroyed", "entity", e.String(), "id", e.id.String())
		}
		destroyed = len(destroys)
	}

	return spawned, destroyed
}

// Live returns the in-play entities in (priority, spawn order)
// The returned slice is never mutated by the directory and must not be mutated by callers
func (d *Directory) Live() []*Entity {
	return d.live
}

// Get returns the entity for h while it is spawned and not destroyed
func (d *Directory) Get(h Handle) (*Entity, bool) {
	if h < 0 || int(h) >= len(d.arena) || d.arena[h] == nil {
		return nil, false
	}
	return d.arena[h], true
}

// Len returns the number of live entities
func (d *Directory) Len() int {
	return len(d.live)
}

func (d *Directory) PendingSpawns() int   { return len(d.spawns) }
func (d *Directory) PendingDestroys() int { return len(d.destroy) }

// Clear exits play for every live entity in priority order and drops pending requests
// Used at teardown
func (d *Directory) Clear() {
	live := d.live
	d.live = nil
	for _, e := range live {
		e.exitPlay()
		d.arena[e.handle] = nil
	}
	for _, e := range d.spawns {
		e.state = StateDestroyed
		d.arena[e.handle] = nil
	}
	d.spawns = nil
	d.destroy = nil
}

// insertByPriority keeps queue ordered by priority, equal priorities in arrival order
func insertByPriority(queue []*Entity, e *Entity) []*Entity {
	idx := len(queue)
	for i, q := range queue {
		if q.priority > e.priority {
			idx = i
			break
		}
	}
	return slices.Insert(queue, idx, e)
}

// insertLive keeps live ordered by (priority, handle)
func insertLive(live []*Entity, e *Entity) []*Entity {
	idx, _ := slices.BinarySearchFunc(live, e, func(a, b *Entity) int {
		if c := cmp.Compare(a.priority, b.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.handle, b.handle)
	})
	return slices.Insert(live, idx, e)
}
