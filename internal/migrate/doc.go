// Package migrate defines the per-item outcome type and the error
// classification shared by the image and credit migrators.
//
// Schema and configuration errors are fatal and abort the run; remote write
// failures are captured on the item's Outcome so sibling items keep flowing.
package migrate
