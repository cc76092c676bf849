package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

type srcKind int

const (
	srcText srcKind = iota
	srcDocx
)

func (k srcKind) String() string {
	if k == srcDocx {
		return "docx"
	}
	return "text"
}

// enough for any of filetype matchers
const headerSize = 8192

// detectSource decides how to read the input file. Everything which is not a
// docx package or other known binary format is considered to be text.
func detectSource(path string) (srcKind, srcEncoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return srcText, encUnknown, err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return srcText, encUnknown, fmt.Errorf("unable to read %s: %w", path, err)
	}
	head = head[:n]

	if enc := detectUTF(head); enc != encUnknown {
		return srcText, enc, nil
	}

	kind, err := filetype.Match(head)
	if err != nil {
		return srcText, encUnknown, err
	}
	switch {
	case kind == filetype.Unknown:
		if bytes.IndexByte(head, 0) >= 0 {
			return srcText, encUnknown, fmt.Errorf("%s does not look like text", path)
		}
		return srcText, encUnknown, nil
	case kind == matchers.TypeDocx:
		return srcDocx, encUnknown, nil
	case kind == matchers.TypeZip && strings.EqualFold(filepath.Ext(path), ".docx"):
		// some producers order package parts differently than Word does
		return srcDocx, encUnknown, nil
	}
	return srcText, encUnknown, fmt.Errorf("unsupported input type %s (%s)", kind.Extension, kind.MIME.Value)
}

func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		// must be checked before UTF-16 LE, they share first two bytes
		return encUTF32LittleEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// selectReader returns reader producing UTF-8 without BOM. Unknown encoding
// reader is returned as is.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder().Reader(r)
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	default:
		// this should never happen
		panic(fmt.Sprintf("unexpected source encoding %d", enc))
	}
}
