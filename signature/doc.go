// Package signature identifies file formats from their leading bytes.
//
// A [Catalog] is an ordered list of [Record] values, each a byte [Pattern]
// with optional wildcards placed at a fixed offset. A [Matcher] checks a
// header of up to [MaxHeaderSize] bytes against the catalog:
//
//	m := signature.NewMatcher(signature.Builtin())
//	res, err := m.Identify(header, opener)
//	if err != nil && signature.IsUnreadableContainer(err) {
//	    // res is still the plain ZIP record
//	}
//	fmt.Println(res.Kind, res.Extension(), res.MIME())
//
// # Matching
//
// A header with no zero byte is reported as [PlainText] without consulting
// the catalog. Otherwise the first record, in catalog order, whose pattern
// matches every non-wildcard byte wins. Catalog order is therefore priority:
// BMP shadows the two-byte 7z record, UTF-16LE shadows UTF-32LE.
//
// # Containers
//
// docx, xlsx, odt and ods share the ZIP signature. When ZIP wins the scan the
// matcher opens the archive through a [ContainerOpener] and looks at entry
// names and the OpenDocument "mimetype" entry. See [Disambiguate].
//
// Catalogs and matchers are immutable and safe for concurrent use.
package signature
