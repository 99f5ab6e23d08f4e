package script

import "github.com/plus3/scriptglue/interop"

type resolutionKey struct {
	id   interop.EntityID
	kind interop.Kind
}

// resolutionCache holds presence answers for a single frame.
type resolutionCache struct {
	answers map[resolutionKey]bool
	hits    uint64
	misses  uint64
}

func newResolutionCache() *resolutionCache {
	return &resolutionCache{answers: make(map[resolutionKey]bool)}
}

func (c *resolutionCache) lookup(id interop.EntityID, kind interop.Kind) (bool, bool) {
	has, ok := c.answers[resolutionKey{id, kind}]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return has, ok
}

func (c *resolutionCache) store(id interop.EntityID, kind interop.Kind, has bool) {
	c.answers[resolutionKey{id, kind}] = has
}

func (c *resolutionCache) reset() {
	clear(c.answers)
}
