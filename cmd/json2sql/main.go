package main

import (
	"os"
	"runtime"
)

// The process name is a per-thread attribute; keep main on the thread
// group leader so ps shows it.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(Execute())
}
