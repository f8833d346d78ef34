// Package validation reports every problem in a config document as a list of
// issues with JSON pointer locations, for editors and CI checks that need
// more than the first error.
package validation
