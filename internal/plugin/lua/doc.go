// Package lua runs Lua scripts against a document.
//
// Scripts see a global table tup that wraps the document session:
//
//	tup.append("šarru", "LUGAL", "king")
//	tup.newline()
//	tup.append("dannu", "dan-nu", "strong")
//	tup.select(1, 1)
//	tup.modify("šarrum", "LUGAL", "king")
//	print(tup.text("normalisation"))
//
// Only the base, table, string and math libraries are available; functions
// that load code from disk or strings are removed. Execution honours the
// deadline of the context passed to DoFile and DoString.
//
// RunFile executes a script as a single undo step: when the script fails,
// every edit it made is rolled back.
package lua
