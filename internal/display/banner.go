package display

import (
	"fmt"
	"io"
)

// PrintBanner writes the startup banner and version line. The CLI skips it
// for JSON log output so machine consumers see only structured lines.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprint(w, ` _____ _
/  ___(_)______  ___ __ _ _ __
\ '--.| |_  / _ \/ __/ _' | '_ \
 '--. \ |/ /  __/ (_| (_| | |_) |
\____/|_/___\___|\___\__,_| .__/
                          |_|
`)
	fmt.Fprintf(w, "sizecap v%s\n\n", version)
}
