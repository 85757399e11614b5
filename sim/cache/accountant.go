package cache

// OverlapBytes returns how many bytes of the request [offset, offset+length)
// are covered by resident blocks of r, its candidate range. Every resident
// block of r is promoted to most-recently-used, whether or not the request is
// admitted afterwards. The result never exceeds length.
func OverlapBytes(store Store, r BlockRange, offset, length, blockSize uint64) uint64 {
	reqEnd, _ := requestEnd(offset, length)

	var hit uint64
	for id := r.First; ; id++ {
		if store.Touch(id) {
			blockStart := uint64(id) * blockSize
			blockEnd, _ := requestEnd(blockStart, blockSize)
			left := max(blockStart, offset)
			right := min(blockEnd, reqEnd)
			if right > left {
				hit += right - left
			}
		}
		if id == r.Last {
			break
		}
	}
	return hit
}

// RequestOverlap derives the candidate range with mode and returns the hit bytes with it.
func RequestOverlap(store Store, mode RangeMode, offset, length, blockSize uint64) (uint64, BlockRange) {
	r := mode.RangeOf(offset, length, blockSize)
	return OverlapBytes(store, r, offset, length, blockSize), r
}
