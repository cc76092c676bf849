// Package common holds small enumerations shared by configuration, conversion
// and command line code.
package common

import (
	"fmt"
	"strings"
)

// OutputFmt is requested output type.
type OutputFmt int

const (
	OutputFmtDocx OutputFmt = iota
	OutputFmtHTML
)

var outputFmtNames = []string{"docx", "html"}

// OutputFmtNames returns list of possible string values of OutputFmt.
func OutputFmtNames() []string {
	return append([]string(nil), outputFmtNames...)
}

func (o OutputFmt) String() string {
	if o.IsValid() {
		return outputFmtNames[o]
	}
	return fmt.Sprintf("OutputFmt(%d)", int(o))
}

func (o OutputFmt) IsValid() bool {
	return o >= 0 && int(o) < len(outputFmtNames)
}

// ParseOutputFmt attempts to convert case insensitive name to OutputFmt.
func ParseOutputFmt(name string) (OutputFmt, error) {
	for i, n := range outputFmtNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return OutputFmt(i), nil
		}
	}
	return OutputFmt(0), fmt.Errorf("%s is not a valid output format, try [%s]", name, strings.Join(outputFmtNames, ", "))
}

func (o OutputFmt) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("invalid output format %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *OutputFmt) UnmarshalText(text []byte) error {
	v, err := ParseOutputFmt(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Ext returns file name extension for the format including leading dot.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtDocx:
		return ".docx"
	case OutputFmtHTML:
		return ".html"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
