package model

import "errors"

// ErrParseFailure indicates source text that does not conform to the Python
// grammar. Callers decide whether to skip, report, or abort the batch; the
// engine never retries.
var ErrParseFailure = errors.New("source could not be parsed as Python")

// ErrNotPythonFile indicates a path that does not name a Python source file.
var ErrNotPythonFile = errors.New("not a Python file")
