package vm

import "errors"

// The following errors may be returned by the core. Every one of them
// aborts the current fetch iteration; callers compare against these
// sentinels with errors.Is since the core always wraps them with
// fmt.Errorf("%w: ...") to attach the failing detail.
var (
	// ErrArithmetic indicates an argument-width underflow while
	// sign-extending a value (a zero-bit field).
	ErrArithmetic = errors.New("vm: arithmetic underflow")

	// ErrConversion indicates an undecodable opcode, an undecodable
	// trap vector, or an out-of-range numeric-to-register conversion.
	ErrConversion = errors.New("vm: conversion failure")

	// ErrInvalidIndex indicates an address could not be represented by
	// the implementation's index type. Unreachable on a 16-bit address
	// space; surfaced only at integer-width bridges.
	ErrInvalidIndex = errors.New("vm: invalid index")

	// ErrSTDINRead indicates a failure reading a byte from host input.
	ErrSTDINRead = errors.New("vm: stdin read failure")

	// ErrSTDOUTWrite indicates a failure writing bytes to host output.
	ErrSTDOUTWrite = errors.New("vm: stdout write failure")

	// ErrSTDOUTFlush indicates a failure flushing host output.
	ErrSTDOUTFlush = errors.New("vm: stdout flush failure")

	// ErrTermiosCreation indicates a failure reading the console's
	// current terminal attributes.
	ErrTermiosCreation = errors.New("vm: termios creation failure")

	// ErrTermiosSetup indicates a failure applying terminal attributes.
	ErrTermiosSetup = errors.New("vm: termios setup failure")

	// ErrOpenFile indicates a failure opening an image file.
	ErrOpenFile = errors.New("vm: open file failure")

	// ErrNoMoreBytes indicates an image ended mid-word (an odd number
	// of bytes, or zero bytes where an origin word was expected).
	ErrNoMoreBytes = errors.New("vm: no more bytes")

	// ErrHalted names a clean stop by the HALT service. Nothing in this
	// package returns it: HALT clears VM.Running, and the dispatch loop
	// stops on that flag with a nil error.
	ErrHalted = errors.New("vm: halted")
)
