package build

import "errors"

// ErrConfigRequired is returned when a Request carries no configuration.
var ErrConfigRequired = errors.New("relnotes: config required")
