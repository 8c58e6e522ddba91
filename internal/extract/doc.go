// Package extract pulls club records out of rendered federation pages.
//
// Page layouts vary per district, so extraction is organized as named
// strategies selected by a layout tag stored alongside each endpoint in the
// registry. Every strategy implements the same contract: a listing page
// yields (name, detail link) pairs, a detail page yields at most one club
// record. Missing optional fields (email, phone, address) never fail a
// record; a missing name makes the page a non-result.
package extract
