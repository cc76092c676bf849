//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// CleanFileName drops characters Windows does not allow in file names.
// Trailing dots and spaces are silently stripped by the OS, so we do it
// beforehand to know the real name.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym < ' ' || strings.ContainsRune(`<>":/\|?*`, sym) {
			return -1
		}
		return sym
	}, in)
	return nameOrDefault(strings.TrimRight(strings.TrimSpace(out), ". "))
}

// EnableColorOutput checks if colorized output is possible and enables VT100
// sequence processing in Windows 10+ console.
func EnableColorOutput(stream *os.File) bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	if v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber"); err != nil || v < 10 {
		return false
	}
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
