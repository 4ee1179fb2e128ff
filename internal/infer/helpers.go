package infer

import "fmt"

// sprintf is a thin indirection over fmt.Sprintf so diagnose call sites
// read as a single vocabulary rather than importing fmt everywhere a
// message is built.
func sprintf(format string, args ...any) string { return fmt.Sprintf(format, args...) }
