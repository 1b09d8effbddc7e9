package signature

// Kind tags the outcome of a lookup
type Kind int

const (
	// NoMatch means the header is binary and no record matched
	NoMatch Kind = iota
	// PlainText means the header contains no zero byte
	PlainText
	// Identified means a record matched; Result.Record holds it
	Identified
)

var kindName = map[Kind]string{
	NoMatch:    "no match",
	PlainText:  "plain text",
	Identified: "identified",
}

func (k Kind) String() string {
	return kindName[k]
}

// Result is the outcome of a single lookup
type Result struct {
	Kind Kind

	// Record is Text for PlainText, the matched or synthetic record for
	// Identified, and the zero Record for NoMatch.
	Record Record
}

// Extension returns the record's extension, or "" for NoMatch
func (r Result) Extension() string {
	return r.Record.Extension
}

// MIME returns the record's MIME type, or "" for NoMatch
func (r Result) MIME() string {
	return r.Record.MIME
}

// Found reports whether the lookup produced a format
func (r Result) Found() bool {
	return r.Kind != NoMatch
}

func identified(r Record) Result {
	return Result{Kind: Identified, Record: r}
}
