//go:build !darwin

package main

import "golang.design/x/hotkey"

// Mod4 is the Super/Cmd key on X11.
const modCmd = hotkey.Mod4
