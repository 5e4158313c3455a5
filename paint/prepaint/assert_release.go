//go:build release

package prepaint

const debugAssertions = false
