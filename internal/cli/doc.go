// Package cli implements the command-line interface for clubscrape.
//
// The cli package provides the Cobra-based CLI with subcommands for resolving
// district endpoints, crawling a district listing, sweeping a numeric
// identifier range, and reconciling harvested records into the dataset. It
// coordinates the resolver, browser, crawl, dataset, and reconcile packages
// and formats run reports as text or JSON.
package cli
