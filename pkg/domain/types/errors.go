package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the analysis pipeline. Callers classify failures with
// errors.Is against these values.
var (
	// ErrInvalidPRURL indicates the submitted URL is empty or does not look
	// like a GitHub pull request / GitLab merge request URL. It is a user
	// input problem and must be handled before any network dispatch.
	ErrInvalidPRURL = goerr.New("invalid pull request URL")

	// ErrMissingContextKey indicates a template placeholder had no
	// corresponding prompt context value. It is a configuration defect in
	// the calling layer, not a user input problem.
	ErrMissingContextKey = goerr.New("missing prompt context key")

	// ErrUnknownPlaceholder indicates a template references a placeholder
	// outside the allow-listed key set.
	ErrUnknownPlaceholder = goerr.New("unknown template placeholder")

	// ErrUnsupportedHost indicates the PR URL points at a host we cannot
	// fetch pull request data from.
	ErrUnsupportedHost = goerr.New("unsupported repository host")

	// ErrEmptyDiff indicates the pull request has no reviewable file changes.
	ErrEmptyDiff = goerr.New("pull request has no file changes")
)
