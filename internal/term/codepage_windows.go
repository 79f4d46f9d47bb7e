//go:build windows

package term

import "syscall"

var (
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procSetConsoleOutput = kernel32.NewProc("SetConsoleOutputCP")
)

// cpUTF8 is the Windows UTF-8 code page identifier (spec §6: "UTF-8 code
// page 65001 is selected").
const cpUTF8 = 65001

// selectUTF8CodePage switches the console output code page to UTF-8 so
// multibyte glyphs render correctly; a no-op on every other platform (see
// codepage_other.go).
func selectUTF8CodePage() error {
	ret, _, err := procSetConsoleOutput.Call(uintptr(cpUTF8))
	if ret == 0 {
		return err
	}
	return nil
}
