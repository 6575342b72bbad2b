// Package engine contains the root extraction driver for rootfind. It finds
// brackets, refines them into roots and deflates each confirmed root out of
// the next search. This package is internal; external consumers should use
// the stable facade in pkg/core.
package engine
