// Package testsupport holds fixture and golden file helpers shared by package
// tests. Set UPDATE_GOLDENS=1 to rewrite goldens.
package testsupport
