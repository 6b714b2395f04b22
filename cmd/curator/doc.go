// Command curator migrates exhibition content from an Alchemy CMS Postgres
// database into Contentful: pictures become deduplicated assets and credit
// pages become locale-keyed markdown on existing entries.
package main
