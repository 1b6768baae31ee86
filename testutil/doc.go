// Package testutil provides testing utilities for objslot.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Operation Sequences
//
//	rng := testutil.NewRNG(seed)
//	switch rng.Op() {
//	case testutil.OpCreate: ...
//	}
//
// # Destroy Hook Recording
//
//	rec := testutil.NewHookRecorder()
//	ref.SetOnDestroy(rec.Hook("box"))
//	ref.Release()
//	rec.Fired() // []string{"box"}
package testutil
