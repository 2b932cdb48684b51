package storage

import "github.com/rotisserie/eris"

// fatalf reports an internal consistency violation. These indicate a caller
// defect, never a data error; continuing would desynchronize the column and
// entity list alignment, so the process is aborted.
func fatalf(format string, args ...interface{}) {
	panic(eris.ToString(eris.Errorf(format, args...), true))
}
