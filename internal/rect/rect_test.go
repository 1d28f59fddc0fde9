package rect

import (
	"math/rand"
	"testing"
)

func TestIntersectsUsesInclusiveBounds(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Right: 9, Bottom: 9}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"touching corner", Rect{Left: 9, Top: 9, Right: 20, Bottom: 20}, true},
		{"adjacent right", Rect{Left: 10, Top: 0, Right: 20, Bottom: 9}, false},
		{"adjacent below", Rect{Left: 0, Top: 10, Right: 9, Bottom: 20}, false},
		{"inside", Rect{Left: 2, Top: 2, Right: 3, Bottom: 3}, true},
		{"covering", Rect{Left: -5, Top: -5, Right: 50, Bottom: 50}, true},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s: Intersects(%v) = %v, want %v", tt.name, tt.b, got, tt.want)
		}
	}
}

func TestMinBound(t *testing.T) {
	got := MinBound(Rect{Left: 5, Top: 10, Right: 20, Bottom: 30}, Rect{Left: 0, Top: 15, Right: 25, Bottom: 20})
	want := Rect{Left: 0, Top: 10, Right: 25, Bottom: 30}
	if got != want {
		t.Fatalf("MinBound = %v, want %v", got, want)
	}
}

func TestInsideBound(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 99, Bottom: 99}

	got, ok := InsideBound(r, Rect{Left: 50, Top: -10, Right: 200, Bottom: 49})
	if !ok {
		t.Fatalf("expected overlap")
	}
	if want := (Rect{Left: 50, Top: 0, Right: 99, Bottom: 49}); got != want {
		t.Fatalf("InsideBound = %v, want %v", got, want)
	}

	got, ok = InsideBound(r, Rect{Left: 100, Top: 0, Right: 120, Bottom: 10})
	if ok {
		t.Fatalf("expected no overlap")
	}
	if got != r {
		t.Fatalf("expected r copied unchanged on miss, got %v", got)
	}
}

func TestClipListFullyCoveredYieldsEmpty(t *testing.T) {
	p := NewPool(0)
	head := p.New(Rect{Left: 10, Top: 10, Right: 20, Bottom: 20})

	if !p.ClipList(&head, Rect{Left: 0, Top: 0, Right: 30, Bottom: 30}) {
		t.Fatalf("unexpected pool exhaustion")
	}
	if head != nil {
		t.Fatalf("expected empty list, got %v", Rects(head))
	}
	if p.Outstanding() != 0 {
		t.Fatalf("expected all nodes returned, outstanding=%d", p.Outstanding())
	}
}

func TestClipListDisjointLeavesListUnchanged(t *testing.T) {
	p := NewPool(0)
	orig := Rect{Left: 0, Top: 0, Right: 9, Bottom: 9}
	head := p.New(orig)
	node := head

	p.ClipList(&head, Rect{Left: 10, Top: 0, Right: 20, Bottom: 9})

	if head != node || head.Next != nil || head.Rect != orig {
		t.Fatalf("expected single untouched node, got %v", Rects(head))
	}
	p.PutList(head)
}

func TestClipListSplitOrder(t *testing.T) {
	p := NewPool(0)
	head := p.New(Rect{Left: 0, Top: 0, Right: 99, Bottom: 99})

	p.ClipList(&head, Rect{Left: 40, Top: 40, Right: 59, Bottom: 59})

	want := []Rect{
		{Left: 0, Top: 0, Right: 99, Bottom: 39},
		{Left: 0, Top: 60, Right: 99, Bottom: 99},
		{Left: 0, Top: 40, Right: 39, Bottom: 59},
		{Left: 60, Top: 40, Right: 99, Bottom: 59},
	}
	got := Rects(head)
	if len(got) != len(want) {
		t.Fatalf("got %d rects %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rect %d = %v, want %v", i, got[i], want[i])
		}
	}
	p.PutList(head)
	if p.Outstanding() != 0 {
		t.Fatalf("outstanding=%d after PutList", p.Outstanding())
	}
}

func TestClipListKeepsUnrelatedNodes(t *testing.T) {
	p := NewPool(0)
	a := p.New(Rect{Left: 0, Top: 0, Right: 9, Bottom: 9})
	b := p.New(Rect{Left: 100, Top: 100, Right: 109, Bottom: 109})
	a.Next = b
	head := a

	p.ClipList(&head, Rect{Left: 0, Top: 0, Right: 4, Bottom: 9})

	got := Rects(head)
	want := []Rect{
		{Left: 5, Top: 0, Right: 9, Bottom: 9},
		{Left: 100, Top: 100, Right: 109, Bottom: 109},
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
	p.PutList(head)
}

func randomRect(rng *rand.Rand, span int) Rect {
	x0, x1 := rng.Intn(span), rng.Intn(span)
	y0, y1 := rng.Intn(span), rng.Intn(span)
	return Rect{Left: min(x0, x1), Top: min(y0, y1), Right: max(x0, x1), Bottom: max(y0, y1)}
}

// coverage rasterizes a list onto a span×span grid, counting hits per pixel.
func coverage(head *Node, span int) []int {
	grid := make([]int, span*span)
	for n := head; n != nil; n = n.Next {
		for y := n.Rect.Top; y <= n.Rect.Bottom; y++ {
			for x := n.Rect.Left; x <= n.Rect.Right; x++ {
				grid[y*span+x]++
			}
		}
	}
	return grid
}

func TestClipListPropertiesRandomized(t *testing.T) {
	const span = 40
	rng := rand.New(rand.NewSource(1))

	for iter := 0; iter < 300; iter++ {
		p := NewPool(0)
		base := randomRect(rng, span)
		head := p.New(base)

		var bounds []Rect
		for k := rng.Intn(6) + 1; k > 0; k-- {
			b := randomRect(rng, span)
			bounds = append(bounds, b)
			if !p.ClipList(&head, b) {
				t.Fatalf("iter %d: unexpected pool exhaustion", iter)
			}
		}

		grid := coverage(head, span)
		for y := 0; y < span; y++ {
			for x := 0; x < span; x++ {
				want := 0
				if base.Contains(x, y) {
					want = 1
					for _, b := range bounds {
						if b.Contains(x, y) {
							want = 0
							break
						}
					}
				}
				if got := grid[y*span+x]; got != want {
					t.Fatalf("iter %d: pixel (%d,%d) covered %d times, want %d (base %v bounds %v)", iter, x, y, got, want, base, bounds)
				}
			}
		}

		for n := head; n != nil; n = n.Next {
			if n.Rect.Empty() {
				t.Fatalf("iter %d: empty rect %v left in list", iter, n.Rect)
			}
		}

		if Len(head) != p.Outstanding() {
			t.Fatalf("iter %d: list has %d nodes but pool reports %d outstanding", iter, Len(head), p.Outstanding())
		}
		p.PutList(head)
		if p.Outstanding() != 0 {
			t.Fatalf("iter %d: leak of %d nodes", iter, p.Outstanding())
		}
	}
}

func TestClipListAreaConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 500; iter++ {
		p := NewPool(0)
		base := randomRect(rng, 64)
		bound := randomRect(rng, 64)
		head := p.New(base)

		p.ClipList(&head, bound)

		total := 0
		for n := head; n != nil; n = n.Next {
			total += n.Rect.Area()
		}
		want := base.Area() - base.Intersect(bound).Area()
		if total != want {
			t.Fatalf("iter %d: area %d, want %d (base %v bound %v)", iter, total, want, base, bound)
		}
	}
}

func TestClipSplitsAroundObstruction(t *testing.T) {
	p := NewPool(0)
	head := p.Clip(Rect{Left: 0, Top: 0, Right: 99, Bottom: 99}, Rect{Left: 40, Top: 40, Right: 59, Bottom: 59})

	want := []Rect{
		{Left: 0, Top: 0, Right: 99, Bottom: 39},
		{Left: 0, Top: 40, Right: 39, Bottom: 59},
		{Left: 60, Top: 40, Right: 99, Bottom: 59},
		{Left: 0, Top: 60, Right: 99, Bottom: 99},
	}
	got := Rects(head)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rect %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClipDisjointReturnsCopy(t *testing.T) {
	p := NewPool(0)
	b := Rect{Left: 0, Top: 0, Right: 9, Bottom: 9}
	head := p.Clip(b, Rect{Left: 50, Top: 50, Right: 60, Bottom: 60})
	if head == nil || head.Next != nil || head.Rect != b {
		t.Fatalf("expected single copy of b, got %v", Rects(head))
	}
}

func TestClipEdgeObstructionDropsEmptyStrips(t *testing.T) {
	p := NewPool(0)
	head := p.Clip(Rect{Left: 0, Top: 0, Right: 99, Bottom: 99}, Rect{Left: 0, Top: 0, Right: 49, Bottom: 99})
	got := Rects(head)
	if len(got) != 1 || got[0] != (Rect{Left: 50, Top: 0, Right: 99, Bottom: 99}) {
		t.Fatalf("got %v", got)
	}
}

func TestPoolAllocatesInBatches(t *testing.T) {
	p := NewPool(0)
	n := p.Get()
	if n == nil {
		t.Fatalf("expected node")
	}
	if p.Allocated() != batchSize {
		t.Fatalf("expected batch of %d, got %d", batchSize, p.Allocated())
	}
	p.Put(n)
	if p.Outstanding() != 0 {
		t.Fatalf("outstanding=%d", p.Outstanding())
	}
}

func TestPoolLimitExhaustion(t *testing.T) {
	p := NewPool(3)
	var nodes []*Node
	for i := 0; i < 3; i++ {
		n := p.Get()
		if n == nil {
			t.Fatalf("node %d: unexpected nil", i)
		}
		nodes = append(nodes, n)
	}
	if p.Get() != nil {
		t.Fatalf("expected exhaustion after limit")
	}
	p.Put(nodes[0])
	if p.Get() == nil {
		t.Fatalf("expected returned node to be reusable")
	}
}

func TestClipListReportsExhaustion(t *testing.T) {
	p := NewPool(2)
	head := p.New(Rect{Left: 0, Top: 0, Right: 99, Bottom: 99})

	if p.ClipList(&head, Rect{Left: 40, Top: 40, Right: 59, Bottom: 59}) {
		t.Fatalf("expected ClipList to report exhaustion")
	}
	for n := head; n != nil; n = n.Next {
		if n.Rect.Intersects(Rect{Left: 40, Top: 40, Right: 59, Bottom: 59}) {
			t.Fatalf("partial list still overlaps bound: %v", n.Rect)
		}
	}
}
