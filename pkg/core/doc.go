// Package core provides a small, stable facade over the rootfind engine
// for programs that embed the search.
//
// Example:
//
//	cfg, _ := core.ConfigFor("j0")
//	res, err := core.FindRoots(ctx, cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalRoots(os.Stdout, res.Roots)
package core
