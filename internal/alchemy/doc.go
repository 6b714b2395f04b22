// Package alchemy reads the source Alchemy CMS schema from Postgres: distinct
// picture rows for the image migration, credit pages with their ordered
// essence listings, and typed essence resolution.
package alchemy
