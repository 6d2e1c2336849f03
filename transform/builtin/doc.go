// Package builtin provides the cell rewriters and row mappers used by the
// sensor pipeline: clock-time conversion, elapsed time, date/time splitting,
// column deletion and the Cartesian-to-spherical conversion.
package builtin
