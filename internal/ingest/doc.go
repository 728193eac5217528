// Package ingest turns JSON documents into the canonical analytics input.
//
// It accepts the canonical {"platforms": {...}} object, {platform, items}
// groups, bare record lists, single records and the native export formats
// of YouTube, TikTok, Facebook and Instagram. Structurally corrupt input is
// reported as *InputError before the analytics core runs; individual field
// problems are left for the normalizer to coerce.
package ingest
