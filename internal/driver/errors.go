package driver

import "errors"

var errStale = errors.New("file changed since it was read")
