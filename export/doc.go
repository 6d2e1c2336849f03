// Package export writes tables to destinations other than line files: an
// Excel workbook and a SQLite table.
package export
