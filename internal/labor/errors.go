package labor

import (
	"fmt"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// UnknownTaskError is returned when a task code has no labor entry
type UnknownTaskError struct {
	Code types.TaskCode
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task: %s", e.Code)
}
