package experiment

import (
	"github.com/litmuschaos/chaos-operator/api/litmuschaos/v1alpha1"
	litmusLIB "github.com/litmuschaos/litmus-go-vira/chaoslib/litmus/vira/node-restart/lib"
	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/litmuschaos/litmus-go-vira/pkg/events"
	experimentEnv "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/node-restart/environment"
	experimentTypes "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/node-restart/types"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"github.com/litmuschaos/litmus-go-vira/pkg/result"
	"github.com/litmuschaos/litmus-go-vira/pkg/status"
	"github.com/litmuschaos/litmus-go-vira/pkg/telemetry"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
	"github.com/sirupsen/logrus"
)

// NodeRestart inject the node-restart chaos
func NodeRestart(clients clients.ClientSets) {
	span := telemetry.StartTracing(&clients, "NodeRestartExperiment")
	defer span.End()

	var err error
	resultDetails := types.ResultDetails{}
	eventsDetails := types.EventDetails{}
	chaosDetails := types.ChaosDetails{}

	//Fetching all the ENV passed from the runner pod
	experimentsDetails := experimentEnv.GetENV()
	log.Infof("[PreReq]: Getting the ENV for the %v experiment", experimentsDetails.ExperimentName)

	// Initialize the chaos attributes
	experimentEnv.InitialiseChaosVariables(&chaosDetails, &experimentsDetails)

	// Initialize Chaos Result Parameters
	types.SetResultAttributes(&resultDetails, chaosDetails)

	//Updating the chaos result in the beginning of experiment
	log.Infof("[PreReq]: Updating the chaos result of %v experiment (SOT)", experimentsDetails.ExperimentName)
	if err = result.ChaosResult(&chaosDetails, clients, &resultDetails, result.SOT); err != nil {
		log.Errorf("Unable to create the chaosresult: %v", err)
		result.RecordAfterFailure(&chaosDetails, &resultDetails, err, clients, &eventsDetails)
		return
	}

	// Set the chaos result uid
	if err = result.SetResultUID(&resultDetails, clients, &chaosDetails); err != nil {
		log.Errorf("Unable to set the chaosresult uid: %v", err)
	}

	// generating the event in chaosresult to mark the verdict as awaited
	msg := "experiment: " + experimentsDetails.ExperimentName + ", Result: Awaited"
	types.SetResultEventAttributes(&eventsDetails, types.AwaitedVerdict, msg, "Normal", &resultDetails)
	if eventErr := events.GenerateEvents(&eventsDetails, clients, &chaosDetails, "ChaosResult"); eventErr != nil {
		log.Errorf("Failed to create %v event inside chaosresult", types.AwaitedVerdict)
	}

	//DISPLAY THE APP INFORMATION
	log.InfoWithValues("[Info]: The application information is as follows", logrus.Fields{
		"Namespace":   experimentsDetails.AppNS,
		"Label":       experimentsDetails.AppLabel,
		"Target Node": experimentsDetails.TargetNode,
		"Node Label":  experimentsDetails.NodeLabel,
		"Chaos Lib":   experimentsDetails.ChaosLib,
		"Ramp Time":   experimentsDetails.RampTime,
	})

	//PRE-CHAOS APPLICATION STATUS CHECK
	chaosDetails.Phase = types.PreChaosPhase
	log.Info("[Status]: Verify that the AUT (Application Under Test) is running (pre-chaos)")
	if err = checkApplications(&experimentsDetails, clients); err != nil {
		log.Errorf("Application status check failed, err: %v", err)
		result.RecordAfterFailure(&chaosDetails, &resultDetails, err, clients, &eventsDetails)
		return
	}

	if experimentsDetails.EngineName != "" {
		types.SetEngineEventAttributes(&eventsDetails, types.PreChaosCheck, "AUT: Running", "Normal", &chaosDetails)
		if eventErr := events.GenerateEvents(&eventsDetails, clients, &chaosDetails, "ChaosEngine"); eventErr != nil {
			log.Errorf("Failed to create %v event inside chaosengine", types.PreChaosCheck)
		}
	}

	chaosDetails.Phase = types.ChaosInjectPhase
	switch experimentsDetails.ChaosLib {
	case "litmus":
		if err = litmusLIB.PrepareNodeRestart(&experimentsDetails, clients, &resultDetails, &eventsDetails, &chaosDetails); err != nil {
			log.Errorf("Chaos injection failed, err: %v", err)
			result.RecordAfterFailure(&chaosDetails, &resultDetails, err, clients, &eventsDetails)
			return
		}
	default:
		log.Error("[Invalid]: Please Provide the correct LIB")
		err = cerrors.Error{ErrorCode: cerrors.ErrorTypeGeneric, Reason: "no match found for specified lib: " + experimentsDetails.ChaosLib}
		result.RecordAfterFailure(&chaosDetails, &resultDetails, err, clients, &eventsDetails)
		return
	}

	log.Infof("[Confirmation]: %v chaos has been injected successfully", experimentsDetails.ExperimentName)
	resultDetails.Verdict = v1alpha1.ResultVerdictPassed

	//POST-CHAOS APPLICATION STATUS CHECK
	chaosDetails.Phase = types.PostChaosPhase
	log.Info("[Status]: Verify that the AUT (Application Under Test) is running (post-chaos)")
	if err = checkApplications(&experimentsDetails, clients); err != nil {
		log.Errorf("Application status check failed, err: %v", err)
		result.RecordAfterFailure(&chaosDetails, &resultDetails, err, clients, &eventsDetails)
		return
	}

	if experimentsDetails.EngineName != "" {
		types.SetEngineEventAttributes(&eventsDetails, types.PostChaosCheck, "AUT: Running", "Normal", &chaosDetails)
		if eventErr := events.GenerateEvents(&eventsDetails, clients, &chaosDetails, "ChaosEngine"); eventErr != nil {
			log.Errorf("Failed to create %v event inside chaosengine", types.PostChaosCheck)
		}
	}

	//Updating the chaosResult in the end of experiment
	log.Infof("[The End]: Updating the chaos result of %v experiment (EOT)", experimentsDetails.ExperimentName)
	if err = result.ChaosResult(&chaosDetails, clients, &resultDetails, result.EOT); err != nil {
		log.Errorf("Unable to update the chaosresult: %v", err)
		return
	}

	// generating the event in chaosresult to mark the verdict as pass/fail
	msg = "experiment: " + experimentsDetails.ExperimentName + ", Result: " + string(resultDetails.Verdict)
	reason, eventType := types.PassVerdict, "Normal"
	if resultDetails.Verdict != v1alpha1.ResultVerdictPassed {
		reason, eventType = types.FailVerdict, "Warning"
	}
	types.SetResultEventAttributes(&eventsDetails, reason, msg, eventType, &resultDetails)
	if eventErr := events.GenerateEvents(&eventsDetails, clients, &chaosDetails, "ChaosResult"); eventErr != nil {
		log.Errorf("Failed to create %v event inside chaosresult", reason)
	}

	if experimentsDetails.EngineName != "" {
		msg := experimentsDetails.ExperimentName + " experiment has been " + string(resultDetails.Verdict) + "ed"
		types.SetEngineEventAttributes(&eventsDetails, types.Summary, msg, "Normal", &chaosDetails)
		if eventErr := events.GenerateEvents(&eventsDetails, clients, &chaosDetails, "ChaosEngine"); eventErr != nil {
			log.Errorf("Failed to create %v event inside chaosengine", types.Summary)
		}
	}
}

// checkApplications verifies the AUT and the auxiliary applications
func checkApplications(experimentsDetails *experimentTypes.ExperimentDetails, clients clients.ClientSets) error {
	if err := status.CheckApplicationStatus(experimentsDetails.AppNS, experimentsDetails.AppLabel, experimentsDetails.TargetContainer, experimentsDetails.Timeout, experimentsDetails.Delay, clients); err != nil {
		return err
	}
	if experimentsDetails.AuxiliaryAppInfo != "" {
		log.Info("[Status]: Verify that the Auxiliary Applications are running")
		return status.CheckAuxiliaryApplicationStatus(experimentsDetails.AuxiliaryAppInfo, experimentsDetails.Timeout, experimentsDetails.Delay, clients)
	}
	return nil
}
