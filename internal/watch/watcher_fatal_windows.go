// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// fatalErrnos are Win32 errors after which ReadDirectoryChangesW cannot
// recover: handle exhaustion (4), a handle invalidated by deleting the
// watched root (6), and a failed notification buffer allocation (8).
var fatalErrnos = []syscall.Errno{4, 6, 8}
