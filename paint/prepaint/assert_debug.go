//go:build !release

package prepaint

const debugAssertions = true
