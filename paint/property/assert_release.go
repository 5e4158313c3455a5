//go:build release

package property

const debugAssertions = false
