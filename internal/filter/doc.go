// Package filter provides the screen-space post passes applied to a
// rendered frame:
//   - ambient occlusion from the depth buffer (horizon based)
//   - 3×3 box supersampling to half resolution
//
// Each pass is a filter value ([AOFilter], [SupersampleFilter]) whose
// constructor sets the default parameters, with a package function that
// applies the defaults directly.
package filter
