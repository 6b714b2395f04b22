// Package contentful implements the two thin REST clients the migration
// consumes: the Management API for writes (assets and entries) and the
// Preview API for the paginated asset listing behind the asset index.
//
// Only the operations the pipeline invokes are covered; this is not a general
// Contentful SDK.
package contentful
