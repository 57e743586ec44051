// Package segment turns a project's milestones into an ordered tiling of its
// lifespan and spreads each tile's hour allocation across its working days.
//
// The segmenter builds the tiling, the allocator prices the days. Both are
// pure; input problems surface as Diagnostics, never as failures.
package segment
