// Package dataprocessing reads fund NAV series and AQR-style factor
// workbooks from the messy files that circulate in practice.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Normalizer: header-row discovery, date parsing, numeric coercion
// 2. NavLoader: one fund series per CSV or Excel file
// 3. FactorLoader: five factor sheets plus an RF sheet per workbook
//
// # Usage
//
// Loading a fund series:
//
//	loader := dataprocessing.NewNavLoader(logger)
//	series, err := loader.LoadFund(ctx, "fund.csv", "fund 1")
//
// Loading factor and risk-free panels for both periodicities:
//
//	fl := dataprocessing.NewFactorLoader(logger)
//	factors, rates, err := fl.FillPanels(ctx, [2]string{dailyPath, monthlyPath}, "Global")
//
// # Input Tolerance
//
// Real exports arrive with junk rows above the header, aliased column
// labels ("VL", "Clôture/Dernier", " Date de valorisation"), decimal
// commas, and dates in several formats. The normalizer resolves all of
// these with fixed lookup tables and an ordered date-layout fallback; a
// layout is accepted only when it parses the entire column.
//
// # Error Handling
//
// Every failure is wrapped in a LOAD-typed AppError carrying the loader
// identity, the operation and its arguments, with the parsing cause
// chained underneath.
package dataprocessing
