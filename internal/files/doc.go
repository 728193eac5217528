// Package files discovers platform export files on disk.
//
// Discovery lists the JSON exports in a directory in a stable order and
// checks that each one is a readable regular file under the size cap, so
// the CLI can hand a whole export folder to the analysis service:
//
//	d := files.NewDiscovery(files.DefaultMaxFileBytes, logger)
//	found, err := d.FindExports("exports")
//	if err != nil {
//	    return err
//	}
//	report, err := svc.AnalyzeFiles(ctx, files.Paths(found), overrides)
package files
