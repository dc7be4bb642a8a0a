package planck

import "github.com/setanarut/vec"

// ProxyID identifies a proxy in a spatial index. IDs are only meaningful to
// the index that issued them.
type ProxyID = int

// NullProxy is the ID of no proxy.
const NullProxy ProxyID = -1

const nullNode = -1

type treeNode struct {
	// aabb is the fattened bounds enclosing the subtree.
	aabb     AABB
	userData any
	// parent doubles as the free list link while the node is pooled.
	parent int
	child1 int
	child2 int
	// height is 0 for leaves, -1 for pooled nodes.
	height int
}

func (n *treeNode) isLeaf() bool {
	return n.child1 == nullNode
}

// DynamicTree is a balanced binary tree of fattened AABBs. Leaves are
// proxies; internal nodes enclose their children. Proxies are fattened by
// aabbExtension and nudged in the direction of motion so that small movements
// do not require tree updates.
type DynamicTree struct {
	root      int
	nodes     []treeNode
	nodeCount int
	freeList  int
}

// NewDynamicTree returns an empty tree.
func NewDynamicTree() *DynamicTree {
	t := &DynamicTree{
		root:  nullNode,
		nodes: make([]treeNode, 16),
	}
	// Chain the pool into a free list.
	for i := 0; i < len(t.nodes)-1; i++ {
		t.nodes[i].parent = i + 1
		t.nodes[i].height = -1
	}
	last := len(t.nodes) - 1
	t.nodes[last].parent = nullNode
	t.nodes[last].height = -1
	return t
}

func (t *DynamicTree) allocateNode() int {
	if t.freeList == nullNode {
		// Grow the pool and chain the new half into the free list.
		old := t.nodes
		t.nodes = make([]treeNode, 2*len(old))
		copy(t.nodes, old)
		for i := len(old); i < len(t.nodes)-1; i++ {
			t.nodes[i].parent = i + 1
			t.nodes[i].height = -1
		}
		last := len(t.nodes) - 1
		t.nodes[last].parent = nullNode
		t.nodes[last].height = -1
		t.freeList = len(old)
	}

	id := t.freeList
	t.freeList = t.nodes[id].parent
	t.nodes[id] = treeNode{
		parent: nullNode,
		child1: nullNode,
		child2: nullNode,
	}
	t.nodeCount++
	return id
}

func (t *DynamicTree) freeNode(id int) {
	assert(0 <= id && id < len(t.nodes), "tree node id out of range")
	assert(t.nodeCount > 0, "tree node pool underflow")
	t.nodes[id].parent = t.freeList
	t.nodes[id].height = -1
	t.freeList = id
	t.nodeCount--
}

// CreateProxy inserts a leaf for aabb, fattened by aabbExtension, and
// returns its ID.
func (t *DynamicTree) CreateProxy(aabb AABB, userData any) ProxyID {
	id := t.allocateNode()
	t.nodes[id].aabb = aabb.Extend(aabbExtension)
	t.nodes[id].userData = userData
	t.nodes[id].height = 0
	t.insertLeaf(id)
	return id
}

// DestroyProxy removes a leaf.
func (t *DynamicTree) DestroyProxy(id ProxyID) {
	assert(0 <= id && id < len(t.nodes), "tree proxy id out of range")
	assert(t.nodes[id].isLeaf(), "tree proxy is not a leaf")
	t.removeLeaf(id)
	t.freeNode(id)
}

// MoveProxy updates the proxy's bounds. If the new tight bounds still fit the
// stored fat bounds, nothing happens and it returns false. Otherwise the leaf
// is reinserted with bounds fattened by aabbExtension and stretched by
// aabbMultiplier times displacement in the direction of motion, and it
// returns true.
func (t *DynamicTree) MoveProxy(id ProxyID, aabb AABB, displacement vec.Vec2) bool {
	assert(0 <= id && id < len(t.nodes), "tree proxy id out of range")
	assert(t.nodes[id].isLeaf(), "tree proxy is not a leaf")

	if t.nodes[id].aabb.Contains(aabb) {
		return false
	}

	t.removeLeaf(id)

	fat := aabb.Extend(aabbExtension)
	d := displacement.Scale(aabbMultiplier)
	if d.X < 0.0 {
		fat.Lower.X += d.X
	} else {
		fat.Upper.X += d.X
	}
	if d.Y < 0.0 {
		fat.Lower.Y += d.Y
	} else {
		fat.Upper.Y += d.Y
	}

	t.nodes[id].aabb = fat
	t.insertLeaf(id)
	return true
}

// UserData returns the data stored with the proxy.
func (t *DynamicTree) UserData(id ProxyID) any {
	assert(0 <= id && id < len(t.nodes), "tree proxy id out of range")
	return t.nodes[id].userData
}

// FatAABB returns the proxy's stored fattened bounds.
func (t *DynamicTree) FatAABB(id ProxyID) AABB {
	assert(0 <= id && id < len(t.nodes), "tree proxy id out of range")
	return t.nodes[id].aabb
}

// Height returns the height of the tree.
func (t *DynamicTree) Height() int {
	if t.root == nullNode {
		return 0
	}
	return t.nodes[t.root].height
}

// Query walks the tree and calls fn for every leaf overlapping aabb. Return
// false from fn to stop early.
func (t *DynamicTree) Query(aabb AABB, fn func(ProxyID) bool) {
	stack := make([]int, 0, 64)
	stack = append(stack, t.root)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nullNode {
			continue
		}

		node := &t.nodes[id]
		if !node.aabb.Overlaps(aabb) {
			continue
		}
		if node.isLeaf() {
			if !fn(id) {
				return
			}
		} else {
			stack = append(stack, node.child1, node.child2)
		}
	}
}

// insertLeaf descends from the root picking the cheaper child by the surface
// area heuristic, splices a new parent in above the best sibling, then walks
// back up rebalancing and refitting.
func (t *DynamicTree) insertLeaf(leaf int) {
	if t.root == nullNode {
		t.root = leaf
		t.nodes[leaf].parent = nullNode
		return
	}

	leafAABB := t.nodes[leaf].aabb
	index := t.root
	for !t.nodes[index].isLeaf() {
		child1 := t.nodes[index].child1
		child2 := t.nodes[index].child2

		area := t.nodes[index].aabb.Perimeter()
		combinedArea := t.nodes[index].aabb.Combine(leafAABB).Perimeter()

		// Cost of creating a new parent for this node and the leaf.
		cost := 2.0 * combinedArea
		// Minimum cost of pushing the leaf further down the tree.
		inheritanceCost := 2.0 * (combinedArea - area)

		var cost1, cost2 float64
		if t.nodes[child1].isLeaf() {
			cost1 = leafAABB.Combine(t.nodes[child1].aabb).Perimeter() + inheritanceCost
		} else {
			oldArea := t.nodes[child1].aabb.Perimeter()
			newArea := leafAABB.Combine(t.nodes[child1].aabb).Perimeter()
			cost1 = (newArea - oldArea) + inheritanceCost
		}
		if t.nodes[child2].isLeaf() {
			cost2 = leafAABB.Combine(t.nodes[child2].aabb).Perimeter() + inheritanceCost
		} else {
			oldArea := t.nodes[child2].aabb.Perimeter()
			newArea := leafAABB.Combine(t.nodes[child2].aabb).Perimeter()
			cost2 = (newArea - oldArea) + inheritanceCost
		}

		if cost < cost1 && cost < cost2 {
			break
		}
		if cost1 < cost2 {
			index = child1
		} else {
			index = child2
		}
	}

	sibling := index
	oldParent := t.nodes[sibling].parent
	newParent := t.allocateNode()
	t.nodes[newParent].parent = oldParent
	t.nodes[newParent].aabb = leafAABB.Combine(t.nodes[sibling].aabb)
	t.nodes[newParent].height = t.nodes[sibling].height + 1

	if oldParent != nullNode {
		if t.nodes[oldParent].child1 == sibling {
			t.nodes[oldParent].child1 = newParent
		} else {
			t.nodes[oldParent].child2 = newParent
		}
	} else {
		t.root = newParent
	}
	t.nodes[newParent].child1 = sibling
	t.nodes[newParent].child2 = leaf
	t.nodes[sibling].parent = newParent
	t.nodes[leaf].parent = newParent

	// Refit ancestors.
	index = t.nodes[leaf].parent
	for index != nullNode {
		index = t.balance(index)

		child1 := t.nodes[index].child1
		child2 := t.nodes[index].child2
		t.nodes[index].height = 1 + max(t.nodes[child1].height, t.nodes[child2].height)
		t.nodes[index].aabb = t.nodes[child1].aabb.Combine(t.nodes[child2].aabb)

		index = t.nodes[index].parent
	}
}

func (t *DynamicTree) removeLeaf(leaf int) {
	if leaf == t.root {
		t.root = nullNode
		return
	}

	parent := t.nodes[leaf].parent
	grandParent := t.nodes[parent].parent
	var sibling int
	if t.nodes[parent].child1 == leaf {
		sibling = t.nodes[parent].child2
	} else {
		sibling = t.nodes[parent].child1
	}

	if grandParent != nullNode {
		if t.nodes[grandParent].child1 == parent {
			t.nodes[grandParent].child1 = sibling
		} else {
			t.nodes[grandParent].child2 = sibling
		}
		t.nodes[sibling].parent = grandParent
		t.freeNode(parent)

		index := grandParent
		for index != nullNode {
			index = t.balance(index)

			child1 := t.nodes[index].child1
			child2 := t.nodes[index].child2
			t.nodes[index].aabb = t.nodes[child1].aabb.Combine(t.nodes[child2].aabb)
			t.nodes[index].height = 1 + max(t.nodes[child1].height, t.nodes[child2].height)

			index = t.nodes[index].parent
		}
	} else {
		t.root = sibling
		t.nodes[sibling].parent = nullNode
		t.freeNode(parent)
	}
}

// balance performs one AVL rotation at iA if its subtrees differ in height by
// more than one, and returns the index of the subtree root after the rotation.
func (t *DynamicTree) balance(iA int) int {
	A := &t.nodes[iA]
	if A.isLeaf() || A.height < 2 {
		return iA
	}

	iB := A.child1
	iC := A.child2
	B := &t.nodes[iB]
	C := &t.nodes[iC]

	balance := C.height - B.height

	// Rotate C up.
	if balance > 1 {
		iF := C.child1
		iG := C.child2
		F := &t.nodes[iF]
		G := &t.nodes[iG]

		C.child1 = iA
		C.parent = A.parent
		A.parent = iC

		if C.parent != nullNode {
			if t.nodes[C.parent].child1 == iA {
				t.nodes[C.parent].child1 = iC
			} else {
				t.nodes[C.parent].child2 = iC
			}
		} else {
			t.root = iC
		}

		if F.height > G.height {
			C.child2 = iF
			A.child2 = iG
			G.parent = iA
			A.aabb = B.aabb.Combine(G.aabb)
			C.aabb = A.aabb.Combine(F.aabb)
			A.height = 1 + max(B.height, G.height)
			C.height = 1 + max(A.height, F.height)
		} else {
			C.child2 = iG
			A.child2 = iF
			F.parent = iA
			A.aabb = B.aabb.Combine(F.aabb)
			C.aabb = A.aabb.Combine(G.aabb)
			A.height = 1 + max(B.height, F.height)
			C.height = 1 + max(A.height, G.height)
		}
		return iC
	}

	// Rotate B up.
	if balance < -1 {
		iD := B.child1
		iE := B.child2
		D := &t.nodes[iD]
		E := &t.nodes[iE]

		B.child1 = iA
		B.parent = A.parent
		A.parent = iB

		if B.parent != nullNode {
			if t.nodes[B.parent].child1 == iA {
				t.nodes[B.parent].child1 = iB
			} else {
				t.nodes[B.parent].child2 = iB
			}
		} else {
			t.root = iB
		}

		if D.height > E.height {
			B.child2 = iD
			A.child1 = iE
			E.parent = iA
			A.aabb = C.aabb.Combine(E.aabb)
			B.aabb = A.aabb.Combine(D.aabb)
			A.height = 1 + max(C.height, E.height)
			B.height = 1 + max(A.height, D.height)
		} else {
			B.child2 = iE
			A.child1 = iD
			D.parent = iA
			A.aabb = C.aabb.Combine(D.aabb)
			B.aabb = A.aabb.Combine(E.aabb)
			A.height = 1 + max(C.height, D.height)
			B.height = 1 + max(A.height, E.height)
		}
		return iB
	}

	return iA
}
