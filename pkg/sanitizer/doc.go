// Package sanitizer provides input normalization for user-submitted
// booking data.
//
// All functions are idempotent and handle invalid input by returning an
// empty string rather than an error. Phone numbers normalize to E.164;
// free-text fields get whitespace collapsed and trimmed.
package sanitizer
