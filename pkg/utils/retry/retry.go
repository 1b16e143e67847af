package retry

import (
	"fmt"
	"time"

	"github.com/litmuschaos/litmus-go-vira/pkg/math"
)

// Action defines the prototype of action function, function as a value
type Action func(attempt uint) error

// Model defines the schema, contains all the attributes need for retry
type Model struct {
	retry    uint
	waitTime time.Duration
	stopOn   func(error) bool
}

// Attempts derives the retry count from the status check timeout and delay (in seconds)
// at least one attempt is always made
func Attempts(timeout, delay int) uint {
	if delay <= 0 {
		return 1
	}
	return uint(math.Maximum(1, timeout/delay))
}

// Times is used to define the retry count
func Times(retry uint) *Model {
	model := Model{}
	return model.Times(retry)
}

// Times is used to define the retry count
func (model *Model) Times(retry uint) *Model {
	model.retry = retry
	return model
}

// Wait is used to define the wait duration between two attempts
func (model *Model) Wait(waitTime time.Duration) *Model {
	model.waitTime = waitTime
	return model
}

// StopOn marks the errors which should not be retried, e.g. a NotFound lookup
func (model *Model) StopOn(stop func(error) bool) *Model {
	model.stopOn = stop
	return model
}

// Try is used to run a action with retries and some delay after each failed attempt
func (model Model) Try(action Action) error {
	if action == nil {
		return fmt.Errorf("no action specified")
	}

	var err error
	for attempt := uint(0); attempt == 0 || attempt < model.retry; attempt++ {
		if err = action(attempt); err == nil {
			return nil
		}
		if model.stopOn != nil && model.stopOn(err) {
			return err
		}
		if model.waitTime > 0 && attempt+1 < model.retry {
			time.Sleep(model.waitTime)
		}
	}
	return err
}
