// Package lake implements the ContentStore port against the content
// lake's HTTP API. It renders structured queries into the lake's query
// language, so the core never sees a query string.
package lake
