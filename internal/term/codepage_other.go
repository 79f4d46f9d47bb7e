//go:build !windows

package term

// selectUTF8CodePage is a no-op on POSIX terminals, which have no console
// code page concept.
func selectUTF8CodePage() error { return nil }
