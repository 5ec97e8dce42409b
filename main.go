package main

import (
	"runtime"

	"nebula/cmd"
)

// GLFW must own the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
