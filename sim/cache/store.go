// Package cache holds the block-granular cache model: the LRU block store
// and the byte-accurate hit accountant that reads it.
package cache

import (
	"math"
	"math/bits"
)

// BlockID is a request offset divided by the block size.
type BlockID uint64

// Store is a fixed-capacity set of resident blocks with recency order.
type Store interface {
	// Contains reports membership without touching recency.
	Contains(id BlockID) bool
	// Touch promotes a resident block to most-recently-used. It returns false if id is not resident.
	Touch(id BlockID) bool
	// Admit makes every block of r resident and most-recently-used, evicting
	// least-recently-used blocks first. It returns the number of evicted blocks.
	Admit(r BlockRange) int
	// Len is the number of resident blocks.
	Len() int
	// Capacity is the maximum number of resident blocks.
	Capacity() int64
}

// BlockRange is an inclusive range of block IDs.
type BlockRange struct {
	First BlockID
	Last  BlockID
}

// RangeMode selects how the last block of a request is derived.
type RangeMode int

const (
	// RangeInclusiveEnd names blocks offset/bs through (offset+length)/bs.
	// A request ending exactly on a block boundary therefore also names the
	// following block. Hit accounting is unaffected because that block
	// overlaps the request by zero bytes, but it is touched and admitted.
	RangeInclusiveEnd RangeMode = iota
	// RangeExactEnd stops at the block holding the request's last byte.
	// A zero-length request names only the block holding its offset.
	RangeExactEnd
)

func (m RangeMode) String() string {
	if m == RangeExactEnd {
		return "exact-end"
	}
	return "inclusive-end"
}

// RangeOf returns the candidate blocks of [offset, offset+length) under mode.
// A request running past the end of the address space is clipped there, so
// Last is never below First.
func (m RangeMode) RangeOf(offset, length, blockSize uint64) BlockRange {
	end, clipped := requestEnd(offset, length)
	if m == RangeExactEnd && length > 0 && !clipped {
		end--
	}
	return BlockRange{
		First: BlockID(offset / blockSize),
		Last:  BlockID(end / blockSize),
	}
}

// requestEnd is offset+length, saturated at math.MaxUint64.
func requestEnd(offset, length uint64) (end uint64, clipped bool) {
	end, carry := bits.Add64(offset, length, 0)
	if carry != 0 {
		return math.MaxUint64, true
	}
	return end, false
}

// RangeOf returns the candidate blocks under RangeInclusiveEnd.
func RangeOf(offset, length, blockSize uint64) BlockRange {
	return RangeInclusiveEnd.RangeOf(offset, length, blockSize)
}

// Len is the number of blocks in the range.
func (r BlockRange) Len() int64 {
	return int64(r.Last-r.First) + 1
}

// Contains reports whether id is inside the range.
func (r BlockRange) Contains(id BlockID) bool {
	return id >= r.First && id <= r.Last
}
