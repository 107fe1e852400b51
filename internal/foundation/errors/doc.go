// Package errors provides the classified error primitives used across bookhooks.
//
// A ClassifiedError carries a category, a severity and free-form context so the
// CLI can pick an exit code and the host can decide whether a failure aborts the
// build or only the current page.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryConfig, "manifest is not valid YAML").
//		Fatal().
//		WithContext("path", manifestPath).
//		WithCause(parseErr).
//		Build()
//
// There is no retry classification: every hook and build step is a single
// synchronous attempt.
package errors
