//go:build windows

package shell

import "syscall"

// sessionAttr detaches a child into its own process group so it survives
// console events aimed at fxdev.
func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
