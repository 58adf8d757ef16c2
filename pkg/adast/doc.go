// Package adast provides the block tree produced by the AsciiDoc block parser.
//
// Ownership flows downward only: a Block owns its Children (and, for tables,
// its rows of cells). There is no child-to-parent pointer; use ParentOf when
// a parent is needed after parsing.
package adast
