// Package linestore reads and writes line-oriented text files.
//
// A Store is rooted at a directory. File names may contain a single '*'
// wildcard, which must resolve to exactly one regular file. Files ending in
// .zst, .sz or .lz4 are transparently decompressed on read and compressed on
// write. A leading byte order mark is removed on read, and both "\n" and
// "\r\n" line endings are accepted.
//
// Writes replace the target through a temporary file in the same directory,
// so readers never observe a partially written file.
package linestore
