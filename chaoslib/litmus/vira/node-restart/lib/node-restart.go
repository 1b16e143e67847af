package lib

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/litmuschaos/litmus-go-vira/pkg/events"
	experimentTypes "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/node-restart/types"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"github.com/litmuschaos/litmus-go-vira/pkg/result"
	"github.com/litmuschaos/litmus-go-vira/pkg/status"
	"github.com/litmuschaos/litmus-go-vira/pkg/telemetry"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
	"github.com/litmuschaos/litmus-go-vira/pkg/utils/common"
	"github.com/litmuschaos/litmus-go-vira/pkg/utils/retry"
	"github.com/palantir/stacktrace"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultRebootCommand schedules the reboot after a minute so that it can still be cancelled
	DefaultRebootCommand = "shutdown -r +1"
	// ForceRebootCommand reboots the node right after the node-shell session returns
	// it is detached so that the node-shell session exits cleanly before the node goes down
	ForceRebootCommand = "nohup sh -c 'sleep 2; reboot -f' >/dev/null 2>&1 &"
	// DefaultCancelCommand cancels a scheduled shutdown
	DefaultCancelCommand = "shutdown -c"

	abortRetries = 3
)

// exit is swapped in tests
var exit = os.Exit

// PrepareNodeRestart contains preparation steps before chaos injection
func PrepareNodeRestart(experimentsDetails *experimentTypes.ExperimentDetails, clients clients.ClientSets, resultDetails *types.ResultDetails, eventsDetails *types.EventDetails, chaosDetails *types.ChaosDetails) error {
	return prepareNodeRestart(common.NotifyOnTermination(), experimentsDetails, clients, resultDetails, eventsDetails, chaosDetails)
}

func prepareNodeRestart(abort <-chan os.Signal, experimentsDetails *experimentTypes.ExperimentDetails, clients clients.ClientSets, resultDetails *types.ResultDetails, eventsDetails *types.EventDetails, chaosDetails *types.ChaosDetails) error {
	span := telemetry.StartTracing(&clients, "InjectVIRANodeRestartFault")
	defer span.End()

	//Waiting for the ramp time before chaos injection
	if experimentsDetails.RampTime != 0 {
		log.Infof("[Ramp]: Waiting for the %vs ramp time before injecting chaos", experimentsDetails.RampTime)
		select {
		case <-abort:
			return abortBeforeInjection(clients, resultDetails, chaosDetails, eventsDetails)
		case <-time.After(time.Duration(experimentsDetails.RampTime) * time.Second):
		}
	}

	targetNode, err := selectTargetNode(experimentsDetails, clients)
	if err != nil {
		return stacktrace.Propagate(err, "could not get node name")
	}

	log.InfoWithValues("[Info]: Details of node under chaos injection", logrus.Fields{
		"Target Node": targetNode,
		"Force":       experimentsDetails.Force,
	})

	if experimentsDetails.EngineName != "" {
		msg := "Injecting " + experimentsDetails.ExperimentName + " chaos on " + targetNode + " node"
		types.SetEngineEventAttributes(eventsDetails, types.ChaosInject, msg, "Normal", chaosDetails)
		if err := events.GenerateEvents(eventsDetails, clients, chaosDetails, "ChaosEngine"); err != nil {
			log.Errorf("failed to create %v event inside chaosengine, err: %v", types.ChaosInject, err)
		}
	}

	// stopping the chaos execution, if abort signal received before the restart
	select {
	case <-abort:
		return abortBeforeInjection(clients, resultDetails, chaosDetails, eventsDetails)
	default:
	}

	// watch for the abort signal and cancel the scheduled reboot
	go abortWatcher(abort, targetNode, experimentsDetails, clients, resultDetails, chaosDetails, eventsDetails)

	common.SetTargets(targetNode, "targeted", "node", chaosDetails)

	log.Infof("[Chaos]: Restarting the %v node", targetNode)
	injectCommand := nodeShellCommand(clients, targetNode, rebootCommand(experimentsDetails))
	if err := common.RunCLICommands(injectCommand, "", fmt.Sprintf("{node: %s}", targetNode), "failed to restart the node", cerrors.ErrorTypeChaosInject); err != nil {
		return stacktrace.Propagate(err, "could not restart the node")
	}
	common.SetTargets(targetNode, "injected", "node", chaosDetails)

	log.Info("[Status]: Checking the node goes to the NotReady state")
	if err := status.CheckNodeNotReadyState(targetNode, experimentsDetails.Timeout, experimentsDetails.Delay, clients); err != nil {
		return cerrors.Error{ErrorCode: cerrors.ErrorTypeChaosInject, Target: fmt.Sprintf("{node: %s}", targetNode), Reason: fmt.Sprintf("node did not go down after the restart: %v", err)}
	}

	log.Infof("[Wait]: Waiting for the chaos duration of %vs", experimentsDetails.ChaosDuration)
	common.WaitForDuration(experimentsDetails.ChaosDuration)

	log.Info("[Status]: Checking the node is back to the Ready state")
	if err := status.CheckNodeStatus(targetNode, experimentsDetails.Timeout, experimentsDetails.Delay, clients); err != nil {
		return cerrors.Error{ErrorCode: cerrors.ErrorTypeChaosRevert, Target: fmt.Sprintf("{node: %s}", targetNode), Reason: fmt.Sprintf("node did not recover after the restart, you may need to manually recover it: %v", err)}
	}
	common.SetTargets(targetNode, "reverted", "node", chaosDetails)

	log.Info("[Status]: Verify that the AUT (Application Under Test) is running (post-restart)")
	if err := status.CheckApplicationStatus(experimentsDetails.AppNS, experimentsDetails.AppLabel, experimentsDetails.TargetContainer, experimentsDetails.Timeout, experimentsDetails.Delay, clients); err != nil {
		return stacktrace.Propagate(err, "application status check failed")
	}

	if experimentsDetails.AuxiliaryAppInfo != "" {
		log.Info("[Status]: Verify that the Auxiliary Applications are running")
		if err := status.CheckAuxiliaryApplicationStatus(experimentsDetails.AuxiliaryAppInfo, experimentsDetails.Timeout, experimentsDetails.Delay, clients); err != nil {
			return stacktrace.Propagate(err, "auxiliary application status check failed")
		}
	}

	//Waiting for the ramp time after chaos injection
	if experimentsDetails.RampTime != 0 {
		log.Infof("[Ramp]: Waiting for the %vs ramp time after injecting chaos", experimentsDetails.RampTime)
		common.WaitForDuration(experimentsDetails.RampTime)
	}
	return nil
}

// selectTargetNode prefers the TARGET_NODE env over the node/app label based selection
// the TARGET_NODE is looked up to fail early on a typo
func selectTargetNode(experimentsDetails *experimentTypes.ExperimentDetails, clients clients.ClientSets) (string, error) {
	if experimentsDetails.TargetNode != "" {
		if _, err := clients.GetNode(experimentsDetails.TargetNode, experimentsDetails.Timeout, experimentsDetails.Delay); err != nil {
			return "", cerrors.Error{ErrorCode: cerrors.ErrorTypeTargetSelection, Target: fmt.Sprintf("{node: %s}", experimentsDetails.TargetNode), Reason: err.Error()}
		}
		return experimentsDetails.TargetNode, nil
	}
	return common.GetNodeName(experimentsDetails.AppNS, experimentsDetails.AppLabel, experimentsDetails.NodeLabel, experimentsDetails.Timeout, experimentsDetails.Delay, clients)
}

func rebootCommand(experimentsDetails *experimentTypes.ExperimentDetails) string {
	switch {
	case experimentsDetails.ChaosInjectCmd != "":
		return experimentsDetails.ChaosInjectCmd
	case experimentsDetails.Force:
		return ForceRebootCommand
	default:
		return DefaultRebootCommand
	}
}

func cancelCommand(experimentsDetails *experimentTypes.ExperimentDetails) string {
	if experimentsDetails.ChaosKillCmd != "" {
		return experimentsDetails.ChaosKillCmd
	}
	return DefaultCancelCommand
}

// nodeShellCommand runs the command inside the host namespaces of the node through the kubectl node-shell plugin
// the trace parent is passed along so that the node-shell pod can join the experiment trace
func nodeShellCommand(clients clients.ClientSets, nodeName, command string) *exec.Cmd {
	cmd := exec.Command("kubectl", "node-shell", nodeName, "--", "sh", "-c", command)
	cmd.Env = os.Environ()
	if traceParent := telemetry.GetMarshalledSpanFromContext(clients.Ctx()); traceParent != "" {
		cmd.Env = append(cmd.Env, telemetry.TraceParent+"="+traceParent)
	}
	return cmd
}

// abortWatcher blocks till the abort signal is received
// it cancels the reboot on the target node, records the stopped verdict and exits
func abortWatcher(abort <-chan os.Signal, targetNode string, experimentsDetails *experimentTypes.ExperimentDetails, clients clients.ClientSets, resultDetails *types.ResultDetails, chaosDetails *types.ChaosDetails, eventsDetails *types.EventDetails) {

	<-abort

	log.Info("[Abort]: Chaos Revert Started")
	err := retry.
		Times(abortRetries).
		Wait(1 * time.Second).
		Try(func(attempt uint) error {
			command := nodeShellCommand(clients, targetNode, cancelCommand(experimentsDetails))
			return common.RunCLICommands(command, "", fmt.Sprintf("{node: %s}", targetNode), "failed to cancel the node restart", cerrors.ErrorTypeChaosRevert)
		})
	if err != nil {
		log.Errorf("[Abort]: unable to cancel the node restart, you may need to manually recover the node, err: %v", err)
	} else {
		common.SetTargets(targetNode, "reverted", "node", chaosDetails)
	}

	result.RecordAfterAbort(chaosDetails, resultDetails, clients, eventsDetails)
	log.Info("[Abort]: Chaos Revert Completed")
	exit(1)
}

// abortBeforeInjection records the stopped verdict when the abort signal arrives before the node is restarted
// nothing has to be reverted at that point
func abortBeforeInjection(clients clients.ClientSets, resultDetails *types.ResultDetails, chaosDetails *types.ChaosDetails, eventsDetails *types.EventDetails) error {
	log.Info("[Abort]: Abort signal received before injecting the chaos")
	result.RecordAfterAbort(chaosDetails, resultDetails, clients, eventsDetails)
	exit(1)
	return stacktrace.NewError("chaos aborted before the node restart")
}
