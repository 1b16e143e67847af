package common

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/litmuschaos/chaos-operator/api/litmuschaos/v1alpha1"
	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
)

// Getenv fetch the env and set the default value, if any
func Getenv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return value
}

//WaitForDuration waits for the given time duration (in seconds)
func WaitForDuration(duration int) {
	time.Sleep(time.Duration(duration) * time.Second)
}

// NotifyOnTermination relays SIGINT and SIGTERM to the returned channel
func NotifyOnTermination() chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}

// SetTargets set the target details in chaosdetails struct
func SetTargets(target, chaosStatus, kind string, chaosDetails *types.ChaosDetails) {

	for i := range chaosDetails.Targets {
		if chaosDetails.Targets[i].Name == target {
			chaosDetails.Targets[i].ChaosStatus = chaosStatus
			return
		}
	}
	newTarget := v1alpha1.TargetDetails{
		Name:        target,
		Kind:        kind,
		ChaosStatus: chaosStatus,
	}
	chaosDetails.Targets = append(chaosDetails.Targets, newTarget)
}

// RunCLICommands runs the given command and converts a failure into a user-friendly error
func RunCLICommands(command *exec.Cmd, source, target, message string, errorCode cerrors.ErrorType) error {
	var out, stdErr bytes.Buffer
	command.Stdout = &out
	command.Stderr = &stdErr

	log.Debugf("[Exec]: running %v", strings.Join(command.Args, " "))
	if err := command.Run(); err != nil {
		reason := strings.TrimSpace(stdErr.String())
		if reason == "" {
			reason = err.Error()
		}
		log.Errorf("%v, err: %v", message, reason)
		if source != "" {
			reason = fmt.Sprintf("%s: %s", source, reason)
		}
		return cerrors.Error{ErrorCode: errorCode, Target: target, Reason: fmt.Sprintf("%s: %s", message, reason)}
	}
	if output := strings.TrimSpace(out.String()); output != "" {
		log.Debugf("[Exec]: output: %v", output)
	}
	return nil
}
