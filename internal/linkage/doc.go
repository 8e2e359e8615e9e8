// Package linkage carries the routine's four-parameter calling convention
// as a fixed-width record.
//
// A record is 31 ASCII bytes, fields in parameter order:
//
//	offset  len  field   picture
//	     0    9  a       S9(7)V99
//	     9    9  b       S9(7)V99
//	    18    9  sum     S9(7)V99  (output)
//	    27    4  status  S9(4)     (output)
//
// Every field is zoned decimal: one digit per byte with the sign
// overpunched on the last byte. A positive last digit d is written as
// "{ABCDEFGHI"[d] and a negative one as "}JKLMNOPQR"[d]. A plain digit in
// the last position is read as positive.
package linkage
