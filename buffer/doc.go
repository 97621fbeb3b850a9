// Package buffer implements the ownership contract for memory crossing the
// batch boundary.
//
// Memory is either borrowed or transferred:
//
//   - Borrowed memory is owned by the caller. A View describes it as
//     (pointer, length, kind); it is valid only for the duration of the call
//     that created it and is never retained or freed by the engine.
//   - Transferred memory is allocated by the engine and handed to the caller
//     as a Handle carrying a release Token. The engine never touches the
//     memory afterwards; the caller must release it exactly once through the
//     Registry that issued the token.
//
// Borrow validates its arguments and reports violations as errors;
// BorrowUnchecked trusts the caller and leaves violations undefined.
//
// The Registry references every transferred slice until it is released, so a
// Handle's pointer stays valid while the caller holds it. A Registry dropped
// with transfers outstanding simply leaks them to the garbage collector.
package buffer
