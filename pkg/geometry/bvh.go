package geometry

import (
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is an interior node of the Bounding Volume Hierarchy. Children are either
// further nodes or scene primitives; a node built from a single primitive holds it
// on both sides.
type BVHNode struct {
	Box   core.AABB
	Left  Hittable
	Right Hittable
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root  *BVHNode // nil for an empty hierarchy
	Count int      // number of primitives the hierarchy was built from
}

// NewBVH constructs a BVH from a slice of primitives. The random source picks the
// split axis at every level so construction is reproducible for a fixed seed.
func NewBVH(objects []Hittable, random *rand.Rand) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}

	// Work on a copy so the caller's slice order is untouched
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return &BVH{
		Root:  buildBVH(objectsCopy, random),
		Count: len(objects),
	}
}

// buildBVH recursively splits objects at the median along a random axis
func buildBVH(objects []Hittable, random *rand.Rand) *BVHNode {
	axis := random.Intn(3)
	sortByAxis(objects, axis)

	node := &BVHNode{}
	switch len(objects) {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		node.Left = objects[0]
		node.Right = objects[1]
	default:
		mid := len(objects) / 2
		node.Left = buildBVH(objects[:mid], random)
		node.Right = buildBVH(objects[mid:], random)
	}

	node.Box = node.Left.BoundingBox().Union(node.Right.BoundingBox())
	return node
}

// sortByAxis orders objects by the minimum corner of their bounding boxes
func sortByAxis(objects []Hittable, axis int) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Min.Axis(axis) < objects[j].BoundingBox().Min.Axis(axis)
	})
}

// Hit tests if a ray intersects any primitive in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.Hit(ray, tMin, tMax, sampler)
}

// Hit prunes on the node's box, then narrows the interval to the left hit before
// testing the right child so the closer of the two wins.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	t0, t1, ok := n.Box.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, t0, t1, sampler)
	if hitLeft {
		t1 = leftHit.T
	}

	rightHit, hitRight := n.Right.Hit(ray, t0, t1, sampler)
	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box of the node
func (n *BVHNode) BoundingBox() core.AABB {
	return n.Box
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.Box
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int     // Interior nodes
	LeafNodes  int     // Child slots holding primitives
	MaxDepth   int     // Deepest interior node
	AvgDepth   float64 // Mean depth of leaf slots
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range []Hittable{node.Left, node.Right} {
		if inner, ok := child.(*BVHNode); ok {
			bvh.collectStats(inner, depth+1, stats)
		} else {
			stats.LeafNodes++
			stats.AvgDepth += float64(depth + 1)
		}
	}
}
