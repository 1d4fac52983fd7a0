//go:build darwin

package main

import "golang.design/x/hotkey"

const modCmd = hotkey.ModCmd
