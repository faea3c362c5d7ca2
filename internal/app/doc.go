// Package app wires the engine stages together: it owns the logger, loads
// the blueprint and answers, and drives resolve -> plan -> render -> write
// for a single generation run. Each run is a pure function of its inputs;
// the app holds no state between runs.
package app
