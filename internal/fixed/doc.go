// Package fixed provides the fixed-point value type used by the adder.
//
// An Amount is a signed count of hundredths held in an int64. The
// representable range is nine decimal digits with two of them fractional,
// i.e. -9,999,999.99 through 9,999,999.99 (picture S9(7)V99).
//
// Key design constraints:
//   - NO float types anywhere - amounts are scaled integers
//   - Parsing rejects more than two fractional digits instead of rounding
//   - JSON and text forms are decimal strings, never JSON numbers
//
// This package imports nothing internal.
package fixed
