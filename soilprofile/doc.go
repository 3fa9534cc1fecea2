// Package soilprofile models layered soil profiles and checks their
// consistency.
//
// A Profile is a sequence of Layers ordered from shallow to deep, each
// bounded by its top and bottom depth. Check validates a profile strictly:
// layers must be internally consistent, layer tops must ascend, and
// consecutive layers must adjoin exactly, with gaps and overlaps reported as
// constraint errors. Audit returns every discontinuity without failing, for
// workflows that tolerate imperfect field data and log instead.
package soilprofile
