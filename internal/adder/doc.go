// Package adder implements the fixed-point addition routine.
//
// The routine takes two S9(7)V99 addends and yields their sum in the same
// picture together with a status code. On the defined path the status is
// always StatusOK (0).
//
// A sum outside ±9,999,999.99 is handled by the configured Policy:
//
//   - PolicyStatus (default): Sum is 0.00 and Status is StatusSizeError (8)
//   - PolicySaturate: Sum clamps to the nearest bound, Status is 0
//   - PolicyTruncate: high-order digits are dropped and the sign kept,
//     Status is 0
//
// Add is pure. An *Adder is immutable after New and safe for concurrent use.
package adder
