package version

import (
	"fmt"
	"runtime"
)

// Version is the tool version. Overridable at link time via
// -ldflags "-X github.com/yonutiyo/weft/internal/version.Version=...".
var Version = "0.3.0"

// String returns the full version line.
func String() string {
	return fmt.Sprintf("weft %s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}

// Run prints the version information.
func Run() {
	fmt.Println(String())
}
