package segment

// DisjointSet implements union-find over the dense elements [0, n) with
// path halving and union by size. Only roots carry a meaningful size.
type DisjointSet struct {
	parent []int
	size   []int
}

// NewDisjointSet creates a DisjointSet where each element is its own component
func NewDisjointSet(count int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]int, count),
		size:   make([]int, count),
	}
	for i := 0; i < count; i++ {
		ds.parent[i] = i
		ds.size[i] = 1
	}
	return ds
}

// Len returns the number of elements
func (ds *DisjointSet) Len() int {
	return len(ds.parent)
}

// Find returns the root of the component containing p. Every visited node is
// redirected to its grandparent on the way up.
func (ds *DisjointSet) Find(p int) int {
	for p != ds.parent[p] {
		ds.parent[p] = ds.parent[ds.parent[p]]
		p = ds.parent[p]
	}
	return p
}

// Union merges the components containing a and b. Returns true if they were separate.
//
// The smaller component is attached under the larger one. On equal sizes the
// root of b is attached under the root of a.
func (ds *DisjointSet) Union(a, b int) bool {
	rootA := ds.Find(a)
	rootB := ds.Find(b)
	if rootA == rootB {
		return false
	}

	if ds.size[rootA] < ds.size[rootB] {
		ds.parent[rootA] = rootB
		ds.size[rootB] += ds.size[rootA]
	} else {
		ds.parent[rootB] = rootA
		ds.size[rootA] += ds.size[rootB]
	}
	return true
}

// Size returns the number of elements in the component containing p
func (ds *DisjointSet) Size(p int) int {
	return ds.size[ds.Find(p)]
}

// Connected reports whether a and b belong to the same component
func (ds *DisjointSet) Connected(a, b int) bool {
	return ds.Find(a) == ds.Find(b)
}

// Components returns all components. Members are ascending and components are
// ordered by their smallest member.
func (ds *DisjointSet) Components() [][]int {
	slot := make(map[int]int)
	var result [][]int
	for id := range ds.parent {
		root := ds.Find(id)
		i, ok := slot[root]
		if !ok {
			i = len(result)
			slot[root] = i
			result = append(result, nil)
		}
		result[i] = append(result[i], id)
	}
	return result
}
