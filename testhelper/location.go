package testhelper

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// CaseName appends "(file:line)" of the caller to name, so that a failing
// table case points at the line that declared it.
func CaseName(name string) string {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return name
	}

	return fmt.Sprintf("%s (%s:%d)", name, filepath.Base(file), line)
}
