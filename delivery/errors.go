package delivery

import "errors"

// ErrJobNotFound is returned when a job id is unknown or already expired
var ErrJobNotFound = errors.New("job not found")
