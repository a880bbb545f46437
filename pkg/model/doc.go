// Package model defines the building enclosure entity hierarchy: rooms made
// of planar faces, apertures and doors punched into those faces, and shades
// decorating rooms and faces. Entities carry boundary conditions from
// pkg/boundary and geometry from pkg/geometry; derived room properties are
// recomputed from current geometry on every access, never cached.
package model
