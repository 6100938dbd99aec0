//go:build !solitairedebug

package solitaire

const debugInvariants = false
