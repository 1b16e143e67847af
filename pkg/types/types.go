package types

import (
	"github.com/litmuschaos/chaos-operator/api/litmuschaos/v1alpha1"
	clientTypes "k8s.io/apimachinery/pkg/types"
)

const (
	// PreChaosCheck initial stage of experiment check for health before chaos injection
	PreChaosCheck string = "PreChaosCheck"
	// PostChaosCheck  pre-final stage of experiment check for health after chaos injection
	PostChaosCheck string = "PostChaosCheck"
	// Summary final stage of experiment update the verdict
	Summary string = "Summary"
	// ChaosInject this stage refer to the main chaos injection
	ChaosInject string = "ChaosInject"
	// AwaitedVerdict marked the start of test
	AwaitedVerdict string = "Awaited"
	// PassVerdict marked the verdict as passed in the end of experiment
	PassVerdict string = "Pass"
	// FailVerdict marked the verdict as failed in the end of experiment
	FailVerdict string = "Fail"
	// StoppedVerdict marked the verdict as stopped when experiment aborted
	StoppedVerdict string = "Stopped"
)

// ExperimentPhase is the stage of the experiment, it is reported along with the failures
type ExperimentPhase string

const (
	PreChaosPhase    ExperimentPhase = "PreChaos"
	ChaosInjectPhase ExperimentPhase = "ChaosInject"
	PostChaosPhase   ExperimentPhase = "PostChaos"
)

// ResultDetails is for collecting all the chaos-result-related details
type ResultDetails struct {
	Name        string
	Verdict     v1alpha1.ResultVerdict
	ErrorOutput *v1alpha1.ErrorOutput
	Phase       v1alpha1.ResultPhase
	ResultUID   clientTypes.UID
}

// EventDetails is for collecting all the events-related details
type EventDetails struct {
	Message      string
	Reason       string
	ResourceName string
	ResourceUID  clientTypes.UID
	Type         string
}

// ChaosDetails is for collecting all the global variables
type ChaosDetails struct {
	ChaosUID         clientTypes.UID
	ChaosNamespace   string
	ChaosPodName     string
	EngineName       string
	InstanceID       string
	ExperimentName   string
	Timeout          int
	Delay            int
	AppDetail        AppDetails
	ChaosDuration    int
	JobCleanupPolicy string
	ImagePullPolicy  string
	Targets          []v1alpha1.TargetDetails
	Phase            ExperimentPhase
}

// AppDetails contains all the application related envs
type AppDetails struct {
	Namespace string
	Label     string
	Kind      string
}

//SetResultAttributes initialise all the chaos result ENV
func SetResultAttributes(resultDetails *ResultDetails, chaosDetails ChaosDetails) {
	resultDetails.Verdict = v1alpha1.ResultVerdictAwaited
	resultDetails.Phase = v1alpha1.ResultPhaseRunning
	if chaosDetails.EngineName != "" {
		resultDetails.Name = chaosDetails.EngineName + "-" + chaosDetails.ExperimentName
	} else {
		resultDetails.Name = chaosDetails.ExperimentName
	}

	if chaosDetails.InstanceID != "" {
		resultDetails.Name = resultDetails.Name + "-" + chaosDetails.InstanceID
	}
}

//SetResultAfterCompletion set all the chaos result ENV in the EOT
func SetResultAfterCompletion(resultDetails *ResultDetails, verdict v1alpha1.ResultVerdict, phase v1alpha1.ResultPhase, errorOutput *v1alpha1.ErrorOutput) {
	resultDetails.Verdict = verdict
	resultDetails.Phase = phase
	resultDetails.ErrorOutput = errorOutput
}

//SetEngineEventAttributes initialise attributes for event generation in chaos engine
func SetEngineEventAttributes(eventsDetails *EventDetails, reason, message, eventType string, chaosDetails *ChaosDetails) {
	eventsDetails.Reason = reason
	eventsDetails.Message = message
	eventsDetails.ResourceName = chaosDetails.EngineName
	eventsDetails.ResourceUID = chaosDetails.ChaosUID
	eventsDetails.Type = eventType
}

//SetResultEventAttributes initialise attributes for event generation in chaos result
func SetResultEventAttributes(eventsDetails *EventDetails, reason, message, eventType string, resultDetails *ResultDetails) {
	eventsDetails.Reason = reason
	eventsDetails.Message = message
	eventsDetails.ResourceName = resultDetails.Name
	eventsDetails.ResourceUID = resultDetails.ResultUID
	eventsDetails.Type = eventType
}
