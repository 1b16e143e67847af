package result

import (
	"github.com/litmuschaos/chaos-operator/api/litmuschaos/v1alpha1"
	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/litmuschaos/litmus-go-vira/pkg/events"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
	"github.com/palantir/stacktrace"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// SOT marks the start of test
	SOT = "SOT"
	// EOT marks the end of test
	EOT = "EOT"
)

//ChaosResult Create and Update the chaos result
func ChaosResult(chaosDetails *types.ChaosDetails, clients clients.ClientSets, resultDetails *types.ResultDetails, state string) error {

	result, err := clients.GetChaosResult(chaosDetails, resultDetails.Name)
	if err != nil {
		return stacktrace.Propagate(err, "could not get the chaosresult")
	}

	switch state {
	case SOT:
		if result == nil {
			return InitializeChaosResult(chaosDetails, clients, resultDetails)
		}
		result.Status.ExperimentStatus.ErrorOutput = nil
	default:
		if result == nil {
			return cerrors.Error{ErrorCode: cerrors.ErrorTypeChaosResultCRUD, Target: resultDetails.Name, Reason: "chaosresult not found at the end of test"}
		}
		if resultDetails.Phase == v1alpha1.ResultPhaseRunning {
			resultDetails.Phase = v1alpha1.ResultPhaseCompleted
		}
		updateHistory(result, chaosDetails, resultDetails.Verdict)
	}

	result.Spec.InstanceID = chaosDetails.InstanceID
	result.Status.ExperimentStatus.Phase = resultDetails.Phase
	result.Status.ExperimentStatus.Verdict = resultDetails.Verdict
	if resultDetails.ErrorOutput != nil {
		result.Status.ExperimentStatus.ErrorOutput = resultDetails.ErrorOutput
	}
	return clients.UpdateChaosResult(chaosDetails, result)
}

//InitializeChaosResult create the chaos result
func InitializeChaosResult(chaosDetails *types.ChaosDetails, clients clients.ClientSets, resultDetails *types.ResultDetails) error {

	chaosResult := &v1alpha1.ChaosResult{
		ObjectMeta: metav1.ObjectMeta{
			Name:      resultDetails.Name,
			Namespace: chaosDetails.ChaosNamespace,
			Labels: map[string]string{
				"app.kubernetes.io/component": "experiment-job",
				"app.kubernetes.io/part-of":   "litmus",
				"chaosUID":                    string(chaosDetails.ChaosUID),
				"name":                        resultDetails.Name,
			},
		},
		Spec: v1alpha1.ChaosResultSpec{
			EngineName:     chaosDetails.EngineName,
			ExperimentName: chaosDetails.ExperimentName,
			InstanceID:     chaosDetails.InstanceID,
		},
		Status: v1alpha1.ChaosResultStatus{
			ExperimentStatus: v1alpha1.TestStatus{
				Phase:   resultDetails.Phase,
				Verdict: resultDetails.Verdict,
			},
			History: &v1alpha1.HistoryDetails{},
		},
	}

	exists, err := clients.CreateChaosResult(chaosDetails, chaosResult)
	if err != nil {
		return stacktrace.Propagate(err, "could not create the chaosresult")
	}
	// a parallel run may have created it in between, fall back to the update path
	if exists {
		return ChaosResult(chaosDetails, clients, resultDetails, SOT)
	}
	return nil
}

// updateHistory bumps the run counters and records the targets of the current run
func updateHistory(result *v1alpha1.ChaosResult, chaosDetails *types.ChaosDetails, verdict v1alpha1.ResultVerdict) {
	if result.Status.History == nil {
		result.Status.History = &v1alpha1.HistoryDetails{}
	}
	switch verdict {
	case v1alpha1.ResultVerdictPassed:
		result.Status.History.PassedRuns++
	case v1alpha1.ResultVerdictFailed:
		result.Status.History.FailedRuns++
	case v1alpha1.ResultVerdictStopped:
		result.Status.History.StoppedRuns++
	}

	for _, target := range chaosDetails.Targets {
		found := false
		for i := range result.Status.History.Targets {
			if result.Status.History.Targets[i].Name == target.Name && result.Status.History.Targets[i].Kind == target.Kind {
				result.Status.History.Targets[i].ChaosStatus = target.ChaosStatus
				found = true
				break
			}
		}
		if !found {
			result.Status.History.Targets = append(result.Status.History.Targets, target)
		}
	}
}

// SetResultUID sets the ResultUID into the ResultDetails structure
func SetResultUID(resultDetails *types.ResultDetails, clients clients.ClientSets, chaosDetails *types.ChaosDetails) error {

	result, err := clients.GetChaosResult(chaosDetails, resultDetails.Name)
	if err != nil {
		return stacktrace.Propagate(err, "could not get the chaosresult")
	}
	if result == nil {
		return cerrors.Error{ErrorCode: cerrors.ErrorTypeChaosResultCRUD, Target: resultDetails.Name, Reason: "chaosresult not found"}
	}
	resultDetails.ResultUID = result.UID
	return nil
}

// RecordAfterFailure update the chaosresult and create the summary events
func RecordAfterFailure(chaosDetails *types.ChaosDetails, resultDetails *types.ResultDetails, err error, clients clients.ClientSets, eventsDetails *types.EventDetails) {

	rootCause, errorCode := cerrors.GetRootCauseAndErrorCode(err, string(chaosDetails.Phase))
	types.SetResultAfterCompletion(resultDetails, v1alpha1.ResultVerdictFailed, v1alpha1.ResultPhaseCompleted, &v1alpha1.ErrorOutput{
		ErrorCode: string(errorCode),
		Reason:    rootCause,
	})

	// update the chaos result
	if err := ChaosResult(chaosDetails, clients, resultDetails, EOT); err != nil {
		log.Errorf("unable to update the chaosresult, err: %v", err)
	}

	// add the summary event in chaos result
	msg := "experiment: " + chaosDetails.ExperimentName + ", Result: " + string(resultDetails.Verdict)
	types.SetResultEventAttributes(eventsDetails, types.FailVerdict, msg, "Warning", resultDetails)
	events.GenerateEvents(eventsDetails, clients, chaosDetails, "ChaosResult")

	// add the summary event in chaos engine
	if chaosDetails.EngineName != "" {
		types.SetEngineEventAttributes(eventsDetails, types.Summary, rootCause, "Warning", chaosDetails)
		events.GenerateEvents(eventsDetails, clients, chaosDetails, "ChaosEngine")
	}
}

// RecordAfterAbort marks the chaosresult as stopped, it is used when the experiment receives a termination signal
func RecordAfterAbort(chaosDetails *types.ChaosDetails, resultDetails *types.ResultDetails, clients clients.ClientSets, eventsDetails *types.EventDetails) {

	types.SetResultAfterCompletion(resultDetails, v1alpha1.ResultVerdictStopped, v1alpha1.ResultPhaseCompleted, nil)
	if err := ChaosResult(chaosDetails, clients, resultDetails, EOT); err != nil {
		log.Errorf("unable to update the chaosresult, err: %v", err)
	}

	msg := "experiment: " + chaosDetails.ExperimentName + ", Result: " + string(resultDetails.Verdict)
	types.SetResultEventAttributes(eventsDetails, types.StoppedVerdict, msg, "Warning", resultDetails)
	events.GenerateEvents(eventsDetails, clients, chaosDetails, "ChaosResult")

	if chaosDetails.EngineName != "" {
		msg := chaosDetails.ExperimentName + " experiment has been aborted"
		types.SetEngineEventAttributes(eventsDetails, types.Summary, msg, "Warning", chaosDetails)
		events.GenerateEvents(eventsDetails, clients, chaosDetails, "ChaosEngine")
	}
}
