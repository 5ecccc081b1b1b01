// Package errors provides the classified error type shared by relnotes packages.
//
// A ClassifiedError carries a category (config, network, parse, navigation, ...),
// a severity and free-form context. Leaf packages keep returning plain sentinel
// errors wrapped with %w; orchestration code classifies them once so the CLI
// can pick an exit code and decide how much detail to print.
//
//	err := errors.WrapError(cause, errors.CategoryNetwork, "fetch share tree").
//		WithContext("share_id", shareID).
//		Build()
package errors
