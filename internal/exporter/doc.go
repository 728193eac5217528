// Package exporter writes CreatorPulse reports in the formats the CLI and
// HTTP API offer.
//
// JSON is the canonical report document. CSV and XLSX flatten the report into
// one table per section (posting_schedule, platform_focus, alerts,
// content_themes, meta): CSV as one file per table in a directory, XLSX as
// one worksheet per table in a single workbook.
//
// Example usage:
//
//	exp := exporter.NewExporter(logger)
//
//	// Stream JSON to stdout
//	err := exp.Write(os.Stdout, report, exporter.FormatJSON, exporter.Options{Pretty: true})
//
//	// Write CSV tables into a directory
//	files, err := exp.WriteFile("out/report", report, exporter.FormatCSV, exporter.Options{})
package exporter
