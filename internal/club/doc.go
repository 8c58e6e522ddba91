// Package club defines the record model shared by the crawl, match, and
// reconciliation stages: the extracted Record, the logical field names the
// dataset store maps to physical columns, and the rules for what counts as a
// found club.
package club
