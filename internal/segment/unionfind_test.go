package segment

import (
	"reflect"
	"testing"
)

func TestDisjointSet_Singletons(t *testing.T) {
	ds := NewDisjointSet(5)
	if ds.Len() != 5 {
		t.Fatalf("expected 5 elements, got %d", ds.Len())
	}
	for i := 0; i < 5; i++ {
		if root := ds.Find(i); root != i {
			t.Errorf("element %d should be its own root, got %d", i, root)
		}
		if size := ds.Size(i); size != 1 {
			t.Errorf("element %d should have size 1, got %d", i, size)
		}
	}
}

func TestDisjointSet_UnionBySize(t *testing.T) {
	ds := NewDisjointSet(5)

	// Equal sizes: the second root goes under the first.
	if !ds.Union(0, 1) {
		t.Fatal("Union(0, 1) should report a merge")
	}
	if root := ds.Find(1); root != 0 {
		t.Errorf("tie should keep first root: Find(1) = %d, want 0", root)
	}

	// Smaller component (2) goes under the larger one even when passed first.
	ds.Union(2, 0)
	if root := ds.Find(2); root != 0 {
		t.Errorf("smaller side should yield: Find(2) = %d, want 0", root)
	}

	ds.Union(3, 4)
	if root := ds.Find(4); root != 3 {
		t.Errorf("tie should keep first root: Find(4) = %d, want 3", root)
	}

	ds.Union(3, 0)
	if root := ds.Find(4); root != 0 {
		t.Errorf("size-2 component should join size-3 root: Find(4) = %d, want 0", root)
	}
	if size := ds.Size(4); size != 5 {
		t.Errorf("expected merged size 5, got %d", size)
	}
}

func TestDisjointSet_UnionSameComponent(t *testing.T) {
	ds := NewDisjointSet(3)
	ds.Union(0, 1)
	if ds.Union(1, 0) {
		t.Error("Union of already merged elements should report false")
	}
	if size := ds.Size(0); size != 2 {
		t.Errorf("repeated union must not grow size, got %d", size)
	}
}

func TestDisjointSet_PathHalving(t *testing.T) {
	ds := NewDisjointSet(5)
	// Hand-built chain 4 -> 3 -> 2 -> 1 -> 0
	ds.parent = []int{0, 0, 1, 2, 3}
	ds.size = []int{5, 1, 1, 1, 1}

	if root := ds.Find(4); root != 0 {
		t.Fatalf("Find(4) = %d, want 0", root)
	}
	if ds.parent[4] != 2 {
		t.Errorf("4 should point at its old grandparent 2, got %d", ds.parent[4])
	}
	if ds.parent[2] != 0 {
		t.Errorf("2 should point at its old grandparent 0, got %d", ds.parent[2])
	}
}

func TestDisjointSet_Connected(t *testing.T) {
	ds := NewDisjointSet(10)
	ds.Union(4, 3)
	ds.Union(3, 8)
	ds.Union(6, 5)
	ds.Union(9, 4)
	ds.Union(2, 1)

	tests := []struct {
		p, q int
		want bool
	}{
		{0, 0, true},
		{4, 3, true},
		{3, 4, true},
		{8, 9, true},
		{5, 6, true},
		{0, 7, false},
		{3, 1, false},
		{6, 9, false},
	}
	for _, tt := range tests {
		if got := ds.Connected(tt.p, tt.q); got != tt.want {
			t.Errorf("Connected(%d, %d) = %t, want %t", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestDisjointSet_Components(t *testing.T) {
	ds := NewDisjointSet(6)
	ds.Union(4, 3)
	ds.Union(1, 0)

	got := ds.Components()
	want := [][]int{{0, 1}, {2}, {3, 4}, {5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Components() = %v, want %v", got, want)
	}
}

func TestDisjointSet_OutOfRangePanics(t *testing.T) {
	ds := NewDisjointSet(2)
	defer func() {
		if recover() == nil {
			t.Error("Find on an out-of-range element should panic")
		}
	}()
	ds.Find(2)
}
