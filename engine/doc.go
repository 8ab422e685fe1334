// Package engine provides the distributed simulation engine for networks of
// compartmental neuron models: the epoch-driven coupling of per-cell-group
// time integration with cross-group and cross-rank spike exchange.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - types.go: Spike, Connection, Event, Epoch value types
//   - lanes.go: the per-group sorted event buffer, double-buffered across
//     epochs, that carries events from communicator exchange to cell-group
//     advance — the event delivery pipeline
//   - engine.go: the epoch loop that ties integration and exchange together
//
// # Architecture
//
// engine defines the coupling contract; implementations of the heavier
// numeric pieces live in sibling packages:
//   - cable/: the FVM discretization and Hines integrator backend
//   - mech/: the mechanism ABI and catalogue
//   - cellgroup/: per-cell-group integration loops
//   - dist/: the distributed_context capability set
//   - threadpool/: fork-join concurrency primitives
//
// Sub-packages are wired into engine.Engine via constructor injection — engine
// never reaches into a global registry for them.
package engine
