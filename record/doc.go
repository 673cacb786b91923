// Package record is the passive observation boundary of the solver: a
// recorder subscribed to a bitmask of milestone kinds copies call-site
// state into append-only, per-kind record lists and never feeds back
// into control flow.
//
// The record package provides:
//
//   - Kind, a bitmask of milestone kinds (allocation, free, copy,
//     operation, factory-generate, criterion-check, apply plain and
//     advanced, iteration-complete, object lifecycle).
//   - Recorder, with one notification method per milestone; a kind the
//     recorder is not subscribed to costs a single mask test and
//     allocates nothing.
//   - One record struct per milestone family, immutable after append.
//
// Notification methods never fail, never retry and never mutate their
// arguments. Records are retrievable per kind after (or during) a run
// and survive until Clear.
package record
