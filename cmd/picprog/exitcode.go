package main

import "github.com/moffa90/go-picprog/picerr"

// sysexits(3) values.
const (
	exitOK          = 0
	exitVerify      = 1
	exitUsage       = 64
	exitDataErr     = 65
	exitUnavailable = 69
	exitSoftware    = 70
	exitIOErr       = 74
	exitProtocol    = 76
	exitInterrupted = 130
)

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	switch picerr.KindOf(err) {
	case picerr.Usage:
		return exitUsage
	case picerr.DataFormat, picerr.AddressRange:
		return exitDataErr
	case picerr.DeviceFault:
		return exitUnavailable
	case picerr.IO:
		return exitIOErr
	case picerr.Protocol:
		return exitProtocol
	case picerr.Verification:
		return exitVerify
	case picerr.Cancelled:
		return exitInterrupted
	default:
		return exitSoftware
	}
}
