package cache

// lruNode is an entry of the recency list.
type lruNode struct {
	id   BlockID
	prev *lruNode // towards the least-recently-used end
	next *lruNode // towards the most-recently-used end
}

// LRUStore is a Store with least-recently-used eviction.
// Recency is a doubly linked list (head = LRU, tail = MRU) indexed by a map,
// so touch, insert and evict are O(1).
type LRUStore struct {
	capacity  int64
	index     map[BlockID]*lruNode
	head      *lruNode
	tail      *lruNode
	evictions int64
}

// NewLRUStore creates an empty store holding at most capacityBlocks blocks.
func NewLRUStore(capacityBlocks int64) *LRUStore {
	if capacityBlocks < 0 {
		capacityBlocks = 0
	}
	return &LRUStore{
		capacity: capacityBlocks,
		index:    make(map[BlockID]*lruNode),
	}
}

// pushBack appends a node at the MRU end.
func (s *LRUStore) pushBack(n *lruNode) {
	n.next = nil
	// either both head and tail are nil, or neither is
	if s.tail != nil {
		s.tail.next = n
		n.prev = s.tail
		s.tail = n
	} else {
		s.head = n
		s.tail = n
		n.prev = nil
	}
}

// unlink detaches a node from the list.
func (s *LRUStore) unlink(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.next = nil
	n.prev = nil
}

// Contains implements Store.
func (s *LRUStore) Contains(id BlockID) bool {
	_, ok := s.index[id]
	return ok
}

// Touch implements Store.
func (s *LRUStore) Touch(id BlockID) bool {
	n, ok := s.index[id]
	if !ok {
		return false
	}
	if n != s.tail {
		s.unlink(n)
		s.pushBack(n)
	}
	return true
}

// evictOne drops the least-recently-used block.
func (s *LRUStore) evictOne() BlockID {
	victim := s.head
	s.unlink(victim)
	delete(s.index, victim.id)
	s.evictions++
	return victim.id
}

// Admit implements Store.
//
// Eviction runs first and frees exactly the room needed by the blocks of r
// that are not yet resident. Evicting a block of r itself makes it missing
// again, so the count is adjusted as it goes. When r is larger than the whole
// cache the store ends up holding the highest blocks of r.
func (s *LRUStore) Admit(r BlockRange) int {
	if s.capacity == 0 {
		return 0
	}

	missing := int64(0)
	for id := r.First; ; id++ {
		if !s.Contains(id) {
			missing++
		}
		if id == r.Last {
			break
		}
	}

	evicted := 0
	for s.head != nil && s.capacity-int64(len(s.index)) < missing {
		if r.Contains(s.evictOne()) {
			missing++
		}
		evicted++
	}

	for id := r.First; ; id++ {
		if !s.Touch(id) {
			if int64(len(s.index)) >= s.capacity {
				s.evictOne()
				evicted++
			}
			n := &lruNode{id: id}
			s.index[id] = n
			s.pushBack(n)
		}
		if id == r.Last {
			break
		}
	}
	return evicted
}

// Len implements Store.
func (s *LRUStore) Len() int {
	return len(s.index)
}

// Capacity implements Store.
func (s *LRUStore) Capacity() int64 {
	return s.capacity
}

// Evictions is the number of blocks evicted over the store's lifetime.
func (s *LRUStore) Evictions() int64 {
	return s.evictions
}

// Blocks returns the resident blocks ordered from least to most recently used.
func (s *LRUStore) Blocks() []BlockID {
	ids := make([]BlockID, 0, len(s.index))
	for n := s.head; n != nil; n = n.next {
		ids = append(ids, n.id)
	}
	return ids
}
