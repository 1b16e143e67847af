package environment

import (
	"strconv"

	experimentTypes "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/node-restart/types"
	kubeTypes "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/types"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
	"github.com/litmuschaos/litmus-go-vira/pkg/utils/common"
)

//GetENV fetches all the env variables from the runner pod
func GetENV() experimentTypes.ExperimentDetails {
	return experimentTypes.ExperimentDetails{
		ExperimentDetails: kubeTypes.NewExperimentDetails(
			kubeTypes.WithExperimentName(common.Getenv("EXPERIMENT_NAME", "vira-node-restart")),
			kubeTypes.WithEngineName(common.Getenv("CHAOSENGINE", "")),
			kubeTypes.WithChaosDuration(atoi(common.Getenv("TOTAL_CHAOS_DURATION", "60"))),
			kubeTypes.WithChaosInterval(atoi(common.Getenv("CHAOS_INTERVAL", "10"))),
			kubeTypes.WithRampTime(atoi(common.Getenv("RAMP_TIME", "0"))),
			kubeTypes.WithForce(parseBool(common.Getenv("FORCE", "false"))),
			kubeTypes.WithChaosLib(common.Getenv("LIB", "litmus")),
			kubeTypes.WithChaosServiceAccount(common.Getenv("CHAOS_SERVICE_ACCOUNT", "")),
			kubeTypes.WithAppNS(common.Getenv("APP_NAMESPACE", "")),
			kubeTypes.WithAppLabel(common.Getenv("APP_LABEL", "")),
			kubeTypes.WithChaosInjectCmd(common.Getenv("CHAOS_INJECT_COMMAND", "")),
			kubeTypes.WithAppKind(common.Getenv("APP_KIND", "")),
			kubeTypes.WithNodeLabel(common.Getenv("NODE_LABEL", "")),
			kubeTypes.WithInstanceID(common.Getenv("INSTANCE_ID", "")),
			kubeTypes.WithUID(common.Getenv("CHAOS_UID", "")),
			kubeTypes.WithChaosNamespace(common.Getenv("CHAOS_NAMESPACE", "litmus")),
			kubeTypes.WithChaosPodName(common.Getenv("POD_NAME", "")),
			kubeTypes.WithTimeout(atoi(common.Getenv("STATUS_CHECK_TIMEOUT", "180"))),
			kubeTypes.WithDelay(atoi(common.Getenv("STATUS_CHECK_DELAY", "2"))),
			kubeTypes.WithTargetPods(common.Getenv("TARGET_PODS", "")),
			kubeTypes.WithPodsAffectedPerc(atoi(common.Getenv("PODS_AFFECTED_PERC", "0"))),
			kubeTypes.WithChaosKillCmd(common.Getenv("CHAOS_KILL_COMMAND", "")),
			kubeTypes.WithSequence(common.Getenv("SEQUENCE", "parallel")),
			kubeTypes.WithLIBImagePullPolicy(common.Getenv("LIB_IMAGE_PULL_POLICY", "Always")),
			kubeTypes.WithTargetContainer(common.Getenv("TARGET_CONTAINER", "")),
		),
		TargetNode:       common.Getenv("TARGET_NODE", ""),
		AuxiliaryAppInfo: common.Getenv("AUXILIARY_APPINFO", ""),
	}
}

//InitialiseChaosVariables initialise all the global variables
func InitialiseChaosVariables(chaosDetails *types.ChaosDetails, experimentDetails *experimentTypes.ExperimentDetails) {
	appDetails := types.AppDetails{}
	appDetails.Namespace = experimentDetails.AppNS
	appDetails.Kind = experimentDetails.AppKind
	appDetails.Label = experimentDetails.AppLabel

	chaosDetails.ChaosNamespace = experimentDetails.ChaosNamespace
	chaosDetails.ChaosPodName = experimentDetails.ChaosPodName
	chaosDetails.ChaosUID = experimentDetails.ChaosUID
	chaosDetails.EngineName = experimentDetails.EngineName
	chaosDetails.ExperimentName = experimentDetails.ExperimentName
	chaosDetails.InstanceID = experimentDetails.InstanceID
	chaosDetails.Timeout = experimentDetails.Timeout
	chaosDetails.Delay = experimentDetails.Delay
	chaosDetails.ChaosDuration = experimentDetails.ChaosDuration
	chaosDetails.AppDetail = appDetails
	chaosDetails.JobCleanupPolicy = common.Getenv("JOB_CLEANUP_POLICY", "retain")
	chaosDetails.ImagePullPolicy = experimentDetails.LIBImagePullPolicy
}

// atoi falls back to zero for malformed values, the experiment details are not validated
func atoi(value string) int {
	v, _ := strconv.Atoi(value)
	return v
}

func parseBool(value string) bool {
	v, _ := strconv.ParseBool(value)
	return v
}
