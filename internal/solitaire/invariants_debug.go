//go:build solitairedebug

package solitaire

const debugInvariants = true
