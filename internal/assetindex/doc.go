// Package assetindex tracks which asset ids already exist on the remote
// content platform.
//
// The index is built either from a local JSON cache artifact or by paging
// through the remote asset listing, and makes repeated migration runs
// idempotent: an id found in the index is never uploaded again. The cache
// artifact is a bare JSON array of id strings so it stays interchangeable
// with the tooling that predates this binary.
package assetindex
