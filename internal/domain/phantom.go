package domain

import "spatialreq/internal/geometry"

// PhantomRegionNames are the four fixed, non-movable anchor objects of
// spec.md §3, addressable by name in a spatial spec.
var PhantomRegionNames = []string{
	"top_left_corner", "top_right_corner", "bottom_left_corner", "bottom_right_corner",
}

// PhantomRegions builds the four quadrant anchor objects for the given
// bounds. The y-axis convention used here places "bottom" at the larger-y
// half of the workspace, matching how the planner's source point clouds are
// typically pre-processed (screen-space y grows downward).
func PhantomRegions(b Bounds) map[string]*Object {
	xMin, xMax, yMin, yMax := b.XMin, b.XMax, b.YMin, b.YMax
	xMid, yMid := b.MidX(), b.MidY()

	topLeft := geometry.Rect(xMin, xMid, yMin, yMid)
	topRight := geometry.Rect(xMid, xMax, yMin, yMid)
	bottomLeft := geometry.Rect(xMin, xMid, yMid, yMax)
	bottomRight := geometry.Rect(xMid, xMax, yMid, yMax)

	return map[string]*Object{
		"top_left_corner":     NewObject("top_left_corner", topLeft, "", false),
		"top_right_corner":    NewObject("top_right_corner", topRight, "", false),
		"bottom_left_corner":  NewObject("bottom_left_corner", bottomLeft, "", false),
		"bottom_right_corner": NewObject("bottom_right_corner", bottomRight, "", false),
	}
}

// IsPhantomRegion reports whether name is one of the fixed anchor regions.
func IsPhantomRegion(name string) bool {
	for _, n := range PhantomRegionNames {
		if n == name {
			return true
		}
	}
	return false
}
