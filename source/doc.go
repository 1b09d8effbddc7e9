// Package source acquires signature headers and ZIP containers from files,
// streams, byte slices and S3 objects.
//
// Headers are never padded: a stream shorter than signature.MaxHeaderSize
// yields a shorter header and the matcher treats records past its end as
// non-matches.
//
//	header, err := source.ReadFileHeader("report.bin")
//	if err != nil {
//		return err
//	}
//	res, err := signature.NewMatcher(nil).Identify(header, source.FileZipOpener("report.bin"))
//
// Containers opened for disambiguation read only what they need. Seekable
// inputs and S3 objects are inspected in place through io.ReaderAt; other
// streams are buffered up to a caller supplied limit.
package source
