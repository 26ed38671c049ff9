// Package analysis derives statistics from the master table.
//
// The main entry point is Track, which builds the pair-combination
// ("dàn nhị hợp") tracking matrix for a chosen source and comparison prize.
// Cycles classifies each tracked day by how its hits are spaced, and Gan
// reports the groupings that have gone longest without appearing.
//
// Every function here is pure: it reads the table and returns new values.
// Nothing in this package performs I/O or logs.
package analysis
