// Package file provides the default filesystem implementation of
// driven.CacheStore: one JSON file per unique content digest plus a
// single index file, all written with an atomic temp-file-and-rename
// discipline.
//
// # Crash Safety
//
// Because every write is atomic and the coordinator writes records before
// index entries, a crash at any point leaves either the old consistent
// state or the new consistent state visible. An interrupted run can leave
// an unreferenced record file behind; a later run rewrites it.
//
// # Data Location
//
// By default, the cache lives at ~/.pagehound/cache.
package file
