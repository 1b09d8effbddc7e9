// Package filesig identifies the true format of files, streams, byte slices
// and S3 objects from their leading bytes, independent of any extension.
//
// The matching engine lives in package [github.com/gobeaver/filesig/signature];
// this package wraps it in a [Detector] that adds byte acquisition, result
// caching, structured logging, metrics and a hot-reloadable catalog.
//
// # Basic Usage
//
//	d := filesig.NewDetector()
//
//	res, err := d.DetectFile(ctx, "upload.bin")
//	if err != nil && !signature.IsUnreadableContainer(err) {
//	    return err
//	}
//	fmt.Println(res.Extension(), res.MIME())
//
// Every Detect method returns a usable [signature.Result]. When a ZIP
// container cannot be inspected, the result is plain ZIP and the error says
// why.
//
// # Sources
//
//	d.DetectBytes(ctx, data)
//	d.DetectReader(ctx, r)            // rewinds seekers, buffers other streams only for ZIP
//	d.DetectReaderAt(ctx, ra, size)
//	d.DetectS3(ctx, "bucket", "key")  // ranged GetObject reads
//	d.DetectTree(ctx, "/srv/uploads", filesig.Glob("*.{doc,docx}"))
//
// # Custom Catalogs
//
// Additional signatures are kept in an XML file (see package catalogfile)
// and appended after the built-in ones:
//
//	if err := d.LoadCatalogFile("signatures.xml"); err != nil {
//	    return err
//	}
//	if err := d.WatchCatalog(ctx, "signatures.xml"); err != nil {
//	    return err
//	}
//
// A reload swaps the whole catalog atomically; detections already running
// finish against the catalog they started with.
//
// # Error Handling
//
//	_, err := d.DetectFile(ctx, "missing.bin")
//	if filesig.IsNotExist(err) {
//	    // file does not exist
//	}
//
//	var pathErr *filesig.PathError
//	if errors.As(err, &pathErr) {
//	    fmt.Printf("Operation: %s, Path: %s\n", pathErr.Op, pathErr.Path)
//	}
//
// # Configuration
//
// A Detector can be configured via environment variables with the
// BEAVER_FILESIG_ prefix, or programmatically via the [Config] struct:
//
//	d, err := filesig.New(&filesig.Config{
//	    CatalogFile:  "/etc/filesig/signatures.xml",
//	    WatchCatalog: true,
//	    CacheEnabled: true,
//	    CacheTTL:     "10m",
//	})
package filesig
