// Package merge combines several tables into one.
//
// ByIndex is the key-indexed merge: every data row is keyed by the number in
// its first cell, rows sharing a key across sources are aligned side by side,
// and sources with fewer rows at a key are padded with empty rows. It is the
// join used to fuse accelerometer, gyroscope and magnetometer logs sampled at
// different rates onto one timeline.
//
// Uniform is the positional variant without keys: row i of the output is row
// i of every input, padded to a common shape.
//
// Neither function modifies its inputs.
//
// Example:
//
//	a, _ := table.Parse("A", []string{"t,x", "1.0,a", "1.0,b"}, ",")
//	b, _ := table.Parse("B", []string{"t,y", "1.0,c"}, ",")
//	out, report, err := merge.ByIndex([]*table.Table{a, b}, 2)
//	// out.Lines(): t,Ax,By / 1.0,a,c / 1.0,b,
package merge
