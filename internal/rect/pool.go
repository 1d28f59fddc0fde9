package rect

// batchSize is how many nodes the pool allocates at once when it runs dry.
const batchSize = 10

// Node is one rectangle of a region. A region is a singly linked list of
// non-overlapping rectangles owned by whoever holds its head.
type Node struct {
	Rect Rect
	Next *Node
}

// Pool hands out list nodes from a free list so repaint does not allocate on
// every frame. A Pool is not safe for concurrent use.
type Pool struct {
	free        *Node
	limit       int
	allocated   int
	outstanding int
}

// NewPool returns a pool that allocates at most limit nodes over its
// lifetime. A limit of zero or less means no limit.
func NewPool(limit int) *Pool {
	return &Pool{limit: limit}
}

// Get returns a node with a zero rectangle and no successor, or nil when the
// pool is empty and its limit has been reached.
func (p *Pool) Get() *Node {
	if p.free == nil {
		p.grow()
	}
	if p.free == nil {
		return nil
	}

	n := p.free
	p.free = n.Next
	n.Next = nil
	n.Rect = Rect{}
	p.outstanding++
	return n
}

func (p *Pool) grow() {
	for i := 0; i < batchSize; i++ {
		if p.limit > 0 && p.allocated >= p.limit {
			return
		}
		p.free = &Node{Next: p.free}
		p.allocated++
	}
}

// Put returns a single node to the pool. The caller must not use it again.
func (p *Pool) Put(n *Node) {
	if n == nil {
		return
	}
	n.Next = p.free
	p.free = n
	p.outstanding--
}

// PutList returns every node of the list starting at head.
func (p *Pool) PutList(head *Node) {
	for head != nil {
		next := head.Next
		p.Put(head)
		head = next
	}
}

// Outstanding is the number of nodes handed out and not yet returned.
func (p *Pool) Outstanding() int {
	return p.outstanding
}

// Allocated is the number of nodes the pool has ever created.
func (p *Pool) Allocated() int {
	return p.allocated
}

// Close drops the free list. Nodes still outstanding are left to the garbage
// collector.
func (p *Pool) Close() {
	p.free = nil
	p.allocated = p.outstanding
}

// New returns a one-node list holding r, or nil if the pool is exhausted.
func (p *Pool) New(r Rect) *Node {
	n := p.Get()
	if n == nil {
		return nil
	}
	n.Rect = r
	return n
}

// ClipList removes bound from every rectangle of the list whose head is
// *head. Each overlapped node goes back to the pool and is replaced, in
// place, by up to four residual strips: above, below, left of and right of
// bound. Afterwards no rectangle of the list overlaps bound.
//
// It returns false if the pool ran out of nodes; the list is then left
// without the residuals that could not be allocated.
func (p *Pool) ClipList(head **Node, bound Rect) bool {
	cur := head
	for *cur != nil {
		n := *cur
		if !bound.Intersects(n.Rect) {
			cur = &n.Next
			continue
		}

		r := n.Rect
		*cur = n.Next
		p.Put(n)

		if r.Top < bound.Top {
			strip := r
			strip.Bottom = bound.Top - 1
			if !p.insert(&cur, strip) {
				return false
			}
			r.Top = bound.Top
		}

		if r.Bottom > bound.Bottom {
			strip := r
			strip.Top = bound.Bottom + 1
			if !p.insert(&cur, strip) {
				return false
			}
			r.Bottom = bound.Bottom
		}

		if r.Left < bound.Left {
			strip := r
			strip.Right = bound.Left - 1
			if !p.insert(&cur, strip) {
				return false
			}
		}

		if r.Right > bound.Right {
			strip := r
			strip.Left = bound.Right + 1
			if !p.insert(&cur, strip) {
				return false
			}
		}
	}
	return true
}

// insert links a new node holding r at **cur and moves the cursor past it.
func (p *Pool) insert(cur ***Node, r Rect) bool {
	n := p.Get()
	if n == nil {
		return false
	}
	n.Rect = r
	n.Next = **cur
	**cur = n
	*cur = &n.Next
	return true
}

// Clip returns a new list covering b minus its overlap with t. When they do
// not intersect the list is a single copy of b. Otherwise it holds up to four
// strips of b outside the overlap: top, left, right, bottom. It returns nil if
// the pool is exhausted or nothing of b remains.
func (p *Pool) Clip(b, t Rect) *Node {
	overlap, ok := InsideBound(t, b)
	if !ok {
		return p.New(b)
	}

	strips := [4]Rect{
		{Left: b.Left, Top: b.Top, Right: b.Right, Bottom: overlap.Top - 1},
		{Left: b.Left, Top: overlap.Top, Right: overlap.Left - 1, Bottom: overlap.Bottom},
		{Left: overlap.Right + 1, Top: overlap.Top, Right: b.Right, Bottom: overlap.Bottom},
		{Left: b.Left, Top: overlap.Bottom + 1, Right: b.Right, Bottom: b.Bottom},
	}

	var head *Node
	tail := &head
	for _, s := range strips {
		if s.Empty() {
			continue
		}
		n := p.New(s)
		if n == nil {
			p.PutList(head)
			return nil
		}
		*tail = n
		tail = &n.Next
	}
	return head
}

// Rects copies the rectangles of a list into a slice.
func Rects(head *Node) []Rect {
	var out []Rect
	for n := head; n != nil; n = n.Next {
		out = append(out, n.Rect)
	}
	return out
}

// Len counts the nodes of a list.
func Len(head *Node) int {
	count := 0
	for n := head; n != nil; n = n.Next {
		count++
	}
	return count
}
