//go:build unix

package shell

import "syscall"

// sessionAttr detaches a child into its own session so it survives terminal
// signals aimed at fxdev.
func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
