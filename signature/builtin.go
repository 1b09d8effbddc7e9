package signature

// Signatures from Gary Kessler's file signature table.
// The records are grouped by kind; catalog priority is the order in builtinOrder.

// Office, documents and text
var (
	Word  = Record{Name: "WORD", Pattern: Pat(0xEC, 0xA5, 0xC1, 0x00), Offset: 512, Extension: "doc", MIME: "application/msword"}
	Excel = Record{Name: "EXCEL", Pattern: Pat(0x09, 0x08, 0x10, 0x00, 0x00, 0x06, 0x05, 0x00), Offset: 512, Extension: "xls", MIME: "application/excel"}
	// Unverified: the wildcard at position 4 is carried over as found.
	PPT = Record{Name: "PPT", Pattern: Pat(0xFD, 0xFF, 0xFF, 0xFF, Wild, 0x00, 0x00, 0x00), Offset: 512, Extension: "ppt", MIME: "application/mspowerpoint"}

	RTF   = Record{Name: "RTF", Pattern: Pat(0x7B, 0x5C, 0x72, 0x74, 0x66, 0x31), Extension: "rtf", MIME: "application/rtf"}
	PDF   = Record{Name: "PDF", Pattern: Pat(0x25, 0x50, 0x44, 0x46), Extension: "pdf", MIME: "application/pdf"}
	MSDoc = Record{Name: "MSDOC", Pattern: Pat(0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1), Extension: "", MIME: "application/octet-stream"}
	// Tail of `<?xml version="1.0"?>`, i.e. `rsion="1.0"?>`.
	XML = Record{Name: "XML", Pattern: Pat(0x72, 0x73, 0x69, 0x6F, 0x6E, 0x3D, 0x22, 0x31, 0x2E, 0x30, 0x22, 0x3F, 0x3E), Extension: "xml,xul", MIME: "text/xml"}

	TextUTF8    = Record{Name: "TXT_UTF8", Pattern: Pat(0xEF, 0xBB, 0xBF), Extension: "txt", MIME: "text/plain"}
	TextUTF16BE = Record{Name: "TXT_UTF16_BE", Pattern: Pat(0xFE, 0xFF), Extension: "txt", MIME: "text/plain"}
	TextUTF16LE = Record{Name: "TXT_UTF16_LE", Pattern: Pat(0xFF, 0xFE), Extension: "txt", MIME: "text/plain"}
	TextUTF32BE = Record{Name: "TXT_UTF32_BE", Pattern: Pat(0x00, 0x00, 0xFE, 0xFF), Extension: "txt", MIME: "text/plain"}
	TextUTF32LE = Record{Name: "TXT_UTF32_LE", Pattern: Pat(0xFF, 0xFE, 0x00, 0x00), Extension: "txt", MIME: "text/plain"}
)

// Shadow records. They share the ZIP signature or have no signature at all,
// so they are produced by the matcher and never scanned.
var (
	WordX  = Record{Name: "WORDX", Pattern: Pattern{}, Offset: 512, Extension: "docx", MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
	ExcelX = Record{Name: "EXCELX", Pattern: Pattern{}, Offset: 512, Extension: "xlsx", MIME: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}
	ODT    = Record{Name: "ODT", Pattern: Pattern{}, Offset: 512, Extension: "odt", MIME: "application/vnd.oasis.opendocument.text"}
	ODS    = Record{Name: "ODS", Pattern: Pattern{}, Offset: 512, Extension: "ods", MIME: "application/vnd.oasis.opendocument.spreadsheet"}
	Text   = Record{Name: "TXT", Pattern: Pattern{}, Extension: "txt", MIME: "text/plain"}
)

// Images
var (
	JPEG = Record{Name: "JPEG", Pattern: Pat(0xFF, 0xD8, 0xFF), Extension: "jpg", MIME: "image/jpeg"}
	PNG  = Record{Name: "PNG", Pattern: Pat(0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A), Extension: "png", MIME: "image/png"}
	GIF  = Record{Name: "GIF", Pattern: Pat(0x47, 0x49, 0x46, 0x38, Wild, 0x61), Extension: "gif", MIME: "image/gif"}
	BMP  = Record{Name: "BMP", Pattern: Pat(0x42, 0x4D), Extension: "bmp", MIME: "image/bmp"}
	ICO  = Record{Name: "ICO", Pattern: Pat(0x00, 0x00, 0x01, 0x00), Extension: "ico", MIME: "image/x-icon"}

	// TODO: the three TIFF signatures have not been checked against real files;
	// 49 44 33 is the ID3 tag prefix.
	TIFF             = Record{Name: "TIFF", Pattern: Pat(0x49, 0x44, 0x33), Extension: "tiff", MIME: "image/tiff"}
	TIFFLittleEndian = Record{Name: "TIFF_LE", Pattern: Pat(0x49, 0x49, 0x2A, 0x00, 0x10, 0x00, 0x00, 0x00, 0x43, 0x52), Extension: "tiff", MIME: "image/tiff"}
	TIFFBigEndian    = Record{Name: "TIFF_BE", Pattern: Pat(0x4D, 0x4D, 0x4D, 0x44, 0x00, 0x00), Extension: "tiff", MIME: "image/tiff"}
)

// Archives and executables
var (
	GzTgz = Record{Name: "GZ_TGZ", Pattern: Pat(0x1F, 0x8B, 0x08), Extension: "gz, tgz", MIME: "application/x-gz"}

	// Same bytes as BMP, which comes first.
	SevenZip  = Record{Name: "ZIP_7z", Pattern: Pat(66, 77), Extension: "7z", MIME: "application/x-compressed"}
	SevenZip2 = Record{Name: "ZIP_7z_2", Pattern: Pat(0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C), Extension: "7z", MIME: "application/x-compressed"}

	Zip    = Record{Name: "ZIP", Pattern: Pat(0x50, 0x4B, 0x03, 0x04), Extension: "zip", MIME: "application/x-compressed"}
	Rar    = Record{Name: "RAR", Pattern: Pat(0x52, 0x61, 0x72, 0x21), Extension: "rar", MIME: "application/x-compressed"}
	DllExe = Record{Name: "DLL_EXE", Pattern: Pat(0x4D, 0x5A), Extension: "dll, exe", MIME: "application/octet-stream"}

	// Compressed tar, LZW
	TarZV = Record{Name: "TAR_ZV", Pattern: Pat(0x1F, 0x9D), Extension: "tar.z", MIME: "application/x-tar"}
	// Compressed tar, LZH
	TarZH = Record{Name: "TAR_ZH", Pattern: Pat(0x1F, 0xA0), Extension: "tar.z", MIME: "application/x-tar"}

	BZ2 = Record{Name: "BZ2", Pattern: Pat(0x42, 0x5A, 0x68), Extension: "bz2,tar,bz2,tbz2,tb2", MIME: "application/x-bzip2"}

	LibCOFF = Record{Name: "LIB_COFF", Pattern: Pat(0x21, 0x3C, 0x61, 0x72, 0x63, 0x68, 0x3E, 0x0A), Extension: "lib", MIME: "application/octet-stream"}
)

// Media
var (
	Ogg  = Record{Name: "OGG", Pattern: Pat(103, 103, 83, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0), Extension: "oga,ogg,ogv,ogx", MIME: "application/ogg"}
	MIDI = Record{Name: "MIDI", Pattern: Pat(0x4D, 0x54, 0x68, 0x64), Extension: "midi,mid", MIME: "audio/midi"}
	FLV  = Record{Name: "FLV", Pattern: Pat(0x46, 0x4C, 0x56, 0x01), Extension: "flv", MIME: "application/unknown"}
	// RIFF, four size bytes, then "WAVEfmt ".
	Wave = Record{Name: "WAVE", Pattern: Pat(0x52, 0x49, 0x46, 0x46, Wild, Wild, Wild, Wild, 0x57, 0x41, 0x56, 0x45, 0x66, 0x6D, 0x74, 0x20), Extension: "wav", MIME: "audio/wav"}
	PST  = Record{Name: "PST", Pattern: Pat(0x21, 0x42, 0x44, 0x4E), Extension: "pst", MIME: "application/octet-stream"}
	DWG  = Record{Name: "DWG", Pattern: Pat(0x41, 0x43, 0x31, 0x30), Extension: "dwg", MIME: "application/acad"}
	PSD  = Record{Name: "PSD", Pattern: Pat(0x38, 0x42, 0x50, 0x53), Extension: "psd", MIME: "application/octet-stream"}
)

// Crypto, mail and logs
var (
	// The fourth byte is the format version.
	AES  = Record{Name: "AES", Pattern: Pat(0x41, 0x45, 0x53), Extension: "aes", MIME: "application/octet-stream"}
	SKR  = Record{Name: "SKR", Pattern: Pat(0x95, 0x00), Extension: "skr", MIME: "application/octet-stream"}
	SKR2 = Record{Name: "SKR_2", Pattern: Pat(0x95, 0x01), Extension: "skr", MIME: "application/octet-stream"}
	PKR  = Record{Name: "PKR", Pattern: Pat(0x99, 0x01), Extension: "pkr", MIME: "application/octet-stream"}

	// "From", the generic mbox/eml prefix.
	EMLFrom = Record{Name: "EML_FROM", Pattern: Pat(0x46, 0x72, 0x6F, 0x6D), Extension: "eml", MIME: "message/rfc822"}

	// Windows Vista event log ("ElfFile\0").
	EVTX = Record{Name: "ELF", Pattern: Pat(0x45, 0x6C, 0x66, 0x46, 0x69, 0x6C, 0x65, 0x00), Extension: "elf", MIME: "text/plain"}
)

// builtinOrder is the scan priority of the built-in catalog
var builtinOrder = []Record{
	PDF, Word, Excel, JPEG, Zip, Rar, RTF, PNG, PPT, GIF, DllExe, MSDoc,
	BMP, SevenZip, SevenZip2, GzTgz, BZ2, TarZH, TarZV, Ogg, ICO, XML, MIDI, FLV, Wave, DWG, LibCOFF, PST, PSD,
	AES, SKR, SKR2, PKR, EMLFrom, EVTX, TextUTF8, TextUTF16BE, TextUTF16LE, TextUTF32BE, TextUTF32LE,
	TIFF, TIFFBigEndian, TIFFLittleEndian,
}

var builtin = mustCatalog(builtinOrder)

// Builtin returns the built-in catalog. The value is shared and immutable.
func Builtin() *Catalog {
	return builtin
}

func mustCatalog(records []Record) *Catalog {
	c, err := NewCatalog(records...)
	if err != nil {
		panic(err)
	}
	return c
}
