package scanner

import "errors"

// ErrScanGenerationFailed wraps any unexpected fault while fabricating a
// result. No partial result accompanies it and nothing is cached.
var ErrScanGenerationFailed = errors.New("scanner: scan generation failed")
