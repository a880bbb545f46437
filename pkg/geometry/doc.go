// Package geometry is the geometry kernel for the envelope model.
// It provides planar faces, polyhedra assembled from faces, and the
// numeric predicates (planarity, self-intersection, coincidence,
// watertightness) that the model and adjacency packages consume.
// Vector math is backed by the sdfx vec packages.
package geometry
