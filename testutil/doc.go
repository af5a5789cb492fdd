// Package testutil provides testing utilities for slotpool.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	ops := rng.Ops(1000, 0.4, 0.05) // 40% releases, 5% prunes, rest checkouts
//
// # Map-backed Contexts
//
//	acc := slotpool.AccessorFuncs[testutil.Fields[string, int], string, int]{
//	    GetFunc: testutil.GetField[string, int],
//	    SetFunc: testutil.SetField[string, int],
//	}
package testutil
