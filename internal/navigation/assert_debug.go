//go:build debug

package navigation

const debugAsserts = true
