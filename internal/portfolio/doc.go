// Package portfolio orchestrates the per-fund analyses: it loads fund
// files into a named, insertion-ordered collection, then fans the
// statistics and factor-regression work out across funds with a bounded
// errgroup. Either every fund lands in the consolidated report or the
// call fails with the first error.
package portfolio
