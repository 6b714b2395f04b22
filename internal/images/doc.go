// Package images migrates source pictures into Contentful assets.
//
// Every picture's asset id is derived deterministically from its file uid, so
// a rerun finds earlier uploads in the asset index and skips them without any
// network write.
package images
