// Package catalog groups audio files by filename convention and binds each
// group to a key. Files named "PPP_Name (N).ext" with a shared name form
// one ordered group; the first file's three-digit prefix fixes the group's
// order, later indexes append in processing order. The catalog is built
// once at startup and its structure never changes afterwards; only per-group
// playback state mutates.
package catalog

import (
	"github.com/zjrosen/soundpad/internal/audio"
	"github.com/zjrosen/soundpad/internal/binding"
	"github.com/zjrosen/soundpad/internal/log"
)

// NoIndex is the lastPlayedIndex value of an idle group.
const NoIndex = -1

// Mode is a group's playback mode. Random is reserved: nothing selects it
// and it behaves exactly like Sequential.
type Mode uint8

const (
	ModeSequential Mode = iota
	ModeParallel
	ModeRandom
)

// String returns the mode name for tables and logs.
func (m Mode) String() string {
	switch m {
	case ModeParallel:
		return "parallel"
	case ModeRandom:
		return "random"
	default:
		return "sequential"
	}
}

// Group is one named, ordered collection of sounds bound to one key.
// Sounds is non-empty for every group the catalog admits. LastPlayedIndex
// is NoIndex when idle, otherwise an index into Sounds. The playback flags
// are snapshots of the global toggles taken at trigger time.
type Group struct {
	OrderIndex uint32
	Name       string
	Key        rune
	Sounds     []audio.Handle

	LastPlayedIndex int
	LoopEnabled     bool
	StackEnabled    bool
	Mode            Mode
}

// Idle reports whether nothing in the group has been triggered since the
// last sequence reset.
func (g *Group) Idle() bool { return g.LastPlayedIndex == NoIndex }

// Catalog owns every admitted group, reachable both by bound key and by
// name. Both maps reference the same Group values; the slice preserves
// admission order.
type Catalog struct {
	groups  []*Group
	byKey   map[rune]*Group
	byName  map[string]*Group
	dropped []string
}

// Build parses paths in the given order, admits groups while keys remain,
// and opens every admitted file through player, pre-positioned at zero.
//
// Drops are never fatal: non-conforming names are skipped, groups past the
// key budget are reported and excluded with all their files, and files that
// fail to open are reported and excluded individually.
func Build(player audio.Player, table *binding.Table, paths []string) *Catalog {
	c := &Catalog{
		byKey:  make(map[rune]*Group),
		byName: make(map[string]*Group),
	}
	unbindable := make(map[string]bool)

	for _, path := range paths {
		d, ok := ParseFilename(path)
		if !ok {
			log.Debug(log.CatCatalog, "Skipping non-conforming name", "path", path)
			continue
		}
		if unbindable[d.Name] {
			continue
		}

		g, exists := c.byName[d.Name]
		if !exists {
			key, err := table.Assign(d.Name)
			if err != nil {
				unbindable[d.Name] = true
				c.dropped = append(c.dropped, d.Name)
				log.Warn(log.CatCatalog, "No key left; dropping group",
					"group", d.Name, "capacity", table.Capacity())
				continue
			}
			g = &Group{
				OrderIndex:      d.Prefix,
				Name:            d.Name,
				Key:             key,
				LastPlayedIndex: NoIndex,
			}
			c.groups = append(c.groups, g)
			c.byName[d.Name] = g
			c.byKey[key] = g
		}

		h, err := player.Open(d.Path)
		if err != nil {
			log.Warn(log.CatCatalog, "Open failed; skipping file", "path", d.Path, "error", err)
			continue
		}
		if err := h.Seek(0); err != nil {
			log.Warn(log.CatCatalog, "Pre-position failed", "path", d.Path, "error", err)
		}
		g.Sounds = append(g.Sounds, h)
	}

	c.pruneEmpty()
	log.Info(log.CatCatalog, "Catalog built",
		"groups", len(c.groups), "sounds", len(c.Handles()), "dropped", len(c.dropped))
	return c
}

// pruneEmpty removes groups whose every file failed to open, keeping the
// non-empty-sounds invariant. Their keys stay consumed.
func (c *Catalog) pruneEmpty() {
	kept := c.groups[:0]
	for _, g := range c.groups {
		if len(g.Sounds) == 0 {
			delete(c.byKey, g.Key)
			delete(c.byName, g.Name)
			log.Warn(log.CatCatalog, "Group has no playable sounds; removing", "group", g.Name)
			continue
		}
		kept = append(kept, g)
	}
	c.groups = kept
}

// Groups returns every group in admission order.
func (c *Catalog) Groups() []*Group { return c.groups }

// ByKey returns the group bound to key.
func (c *Catalog) ByKey(key rune) (*Group, bool) {
	g, ok := c.byKey[key]
	return g, ok
}

// ByName returns the group with the given name.
func (c *Catalog) ByName(name string) (*Group, bool) {
	g, ok := c.byName[name]
	return g, ok
}

// Dropped returns the names of groups excluded for lack of keys, in the
// order they were encountered.
func (c *Catalog) Dropped() []string { return c.dropped }

// Handles returns every handle across every group.
func (c *Catalog) Handles() []audio.Handle {
	var out []audio.Handle
	for _, g := range c.groups {
		out = append(out, g.Sounds...)
	}
	return out
}

// Len returns the number of admitted groups.
func (c *Catalog) Len() int { return len(c.groups) }

// Empty reports whether the catalog admitted nothing.
func (c *Catalog) Empty() bool { return len(c.groups) == 0 }

// Close releases every handle. Called once at teardown.
func (c *Catalog) Close() {
	for _, g := range c.groups {
		for _, h := range g.Sounds {
			if err := h.Close(); err != nil {
				log.Warn(log.CatCatalog, "Closing handle", "path", h.Path(), "error", err)
			}
		}
	}
}
