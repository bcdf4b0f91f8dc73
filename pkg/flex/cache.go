package flex

// measureCache remembers the last measurement of every item slot.
//
// Entries are stamped with the epoch they were written in; bumping the
// epoch invalidates all of them at once without touching the slice, and a
// slot that has never been written in the current epoch is a miss. Slots
// are original item indices, so a count change must invalidate.
type measureCache struct {
	epoch   uint64
	entries []cacheEntry
	hits    int
	misses  int
	off     bool
}

type cacheEntry struct {
	epoch  uint64
	width  Spec
	height Spec
	result Measured
}

// CacheStats reports measure cache effectiveness since the last reset.
type CacheStats struct {
	Hits   int
	Misses int
}

func newMeasureCache() *measureCache {
	return &measureCache{epoch: 1}
}

// invalidate drops every entry and resets the counters.
func (c *measureCache) invalidate(n int) {
	c.epoch++
	c.hits, c.misses = 0, 0
	if cap(c.entries) < n {
		c.entries = make([]cacheEntry, n)
	}
	c.entries = c.entries[:n]
}

func (c *measureCache) lookup(slot int, w, h Spec) (Measured, bool) {
	if c.off || slot >= len(c.entries) {
		c.misses++
		return Measured{}, false
	}
	e := c.entries[slot]
	if e.epoch != c.epoch || e.width != w || e.height != h {
		c.misses++
		return Measured{}, false
	}
	c.hits++
	return e.result, true
}

// store replaces the slot's entry as a whole.
func (c *measureCache) store(slot int, w, h Spec, m Measured) {
	if c.off || slot >= len(c.entries) {
		return
	}
	c.entries[slot] = cacheEntry{epoch: c.epoch, width: w, height: h, result: m}
}

// last returns the specs the slot was most recently measured with.
func (c *measureCache) last(slot int) (w, h Spec, ok bool) {
	if slot >= len(c.entries) || c.entries[slot].epoch != c.epoch {
		return Spec{}, Spec{}, false
	}
	e := c.entries[slot]
	return e.width, e.height, true
}
