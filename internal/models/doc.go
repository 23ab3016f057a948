// Package models defines the core domain models for BiteSwipe.
//
// # Models
//
//   - Group: a set of members choosing a restaurant together. The Group is the
//     only aggregate the matching engine mutates.
//   - Restaurant: a catalog entry members swipe on. Read-only to the engine.
//   - Caller: the authenticated identity behind a request.
//   - MatchOutcome: the result of asking a group for its match.
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed as ID strings
// 2. **No behavior that needs I/O**: algorithms over these types live in
// package matcher, persistence lives in package storage
package models
