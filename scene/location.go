package scene

// location packs the archetype (upper 32 bits) and the slot within it (lower 32 bits).
// Locations change when an entity migrates between archetypes; entity ids never do.
type location uint64

func newLocation(archetype uint32, slot uint32) location {
	return location(uint64(archetype)<<32 | uint64(slot))
}

func (l location) archetype() uint32 {
	return uint32(l >> 32)
}

func (l location) slot() uint32 {
	return uint32(l & 0xFFFFFFFF)
}
