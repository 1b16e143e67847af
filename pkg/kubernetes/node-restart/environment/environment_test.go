package environment

import (
	"testing"

	kubeTypes "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/types"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
	"github.com/stretchr/testify/assert"
	clientTypes "k8s.io/apimachinery/pkg/types"
)

func TestGetENV_Defaults(t *testing.T) {
	for _, key := range []string{"EXPERIMENT_NAME", "CHAOS_NAMESPACE", "TOTAL_CHAOS_DURATION", "LIB", "STATUS_CHECK_TIMEOUT", "STATUS_CHECK_DELAY", "LIB_IMAGE_PULL_POLICY", "FORCE", "CHAOS_UID", "TARGET_NODE"} {
		t.Setenv(key, "")
	}

	experimentDetails := GetENV()

	assert.Equal(t, "vira-node-restart", experimentDetails.ExperimentName)
	assert.Equal(t, "litmus", experimentDetails.ChaosNamespace)
	assert.Equal(t, 60, experimentDetails.ChaosDuration)
	assert.Equal(t, "litmus", experimentDetails.ChaosLib)
	assert.Equal(t, 180, experimentDetails.Timeout)
	assert.Equal(t, 2, experimentDetails.Delay)
	assert.Equal(t, "Always", experimentDetails.LIBImagePullPolicy)
	assert.False(t, experimentDetails.Force)
	assert.Empty(t, experimentDetails.ChaosUID)
	assert.Empty(t, experimentDetails.TargetNode)
}

func TestGetENV_FromEnv(t *testing.T) {
	t.Setenv("EXPERIMENT_NAME", "vira-node-restart")
	t.Setenv("CHAOSENGINE", "nginx-chaos")
	t.Setenv("TOTAL_CHAOS_DURATION", "120")
	t.Setenv("RAMP_TIME", "5")
	t.Setenv("FORCE", "true")
	t.Setenv("APP_NAMESPACE", "default")
	t.Setenv("APP_LABEL", "app=nginx")
	t.Setenv("NODE_LABEL", "pool=chaos")
	t.Setenv("CHAOS_UID", "0b4bd1d3-2f2c-4d8e-9a47-3f6a8e5d2c11")
	t.Setenv("CHAOS_INJECT_COMMAND", "systemctl reboot")
	t.Setenv("CHAOS_KILL_COMMAND", "shutdown -c")
	t.Setenv("PODS_AFFECTED_PERC", "not-a-number")
	t.Setenv("SEQUENCE", "serial")
	t.Setenv("TARGET_NODE", "worker-1")
	t.Setenv("AUXILIARY_APPINFO", "default:app=redis")

	experimentDetails := GetENV()

	assert.Equal(t, "nginx-chaos", experimentDetails.EngineName)
	assert.Equal(t, 120, experimentDetails.ChaosDuration)
	assert.Equal(t, 5, experimentDetails.RampTime)
	assert.True(t, experimentDetails.Force)
	assert.Equal(t, "default", experimentDetails.AppNS)
	assert.Equal(t, "app=nginx", experimentDetails.AppLabel)
	assert.Equal(t, "pool=chaos", experimentDetails.NodeLabel)
	assert.Equal(t, clientTypes.UID("0b4bd1d3-2f2c-4d8e-9a47-3f6a8e5d2c11"), experimentDetails.ChaosUID)
	assert.Equal(t, "systemctl reboot", experimentDetails.ChaosInjectCmd)
	assert.Equal(t, "shutdown -c", experimentDetails.ChaosKillCmd)
	assert.Equal(t, 0, experimentDetails.PodsAffectedPerc)
	assert.Equal(t, "worker-1", experimentDetails.TargetNode)
	assert.Equal(t, "default:app=redis", experimentDetails.AuxiliaryAppInfo)
}

func TestGetENV_MatchesDescriptor(t *testing.T) {
	t.Setenv("CHAOS_UID", "uid-1")
	t.Setenv("APP_KIND", "statefulset")

	experimentDetails := GetENV()
	expected := kubeTypes.NewExperimentDetails(
		kubeTypes.WithUID("uid-1"),
		kubeTypes.WithAppKind("statefulset"),
	)
	assert.Equal(t, expected.ChaosUID, experimentDetails.ChaosUID)
	assert.Equal(t, expected.AppKind, experimentDetails.AppKind)
}

func TestInitialiseChaosVariables(t *testing.T) {
	t.Setenv("CHAOS_UID", "uid-1")
	t.Setenv("CHAOSENGINE", "nginx-chaos")
	t.Setenv("APP_NAMESPACE", "default")
	t.Setenv("APP_LABEL", "app=nginx")
	t.Setenv("JOB_CLEANUP_POLICY", "")

	experimentDetails := GetENV()
	chaosDetails := types.ChaosDetails{}
	InitialiseChaosVariables(&chaosDetails, &experimentDetails)

	assert.Equal(t, clientTypes.UID("uid-1"), chaosDetails.ChaosUID)
	assert.Equal(t, "nginx-chaos", chaosDetails.EngineName)
	assert.Equal(t, experimentDetails.ExperimentName, chaosDetails.ExperimentName)
	assert.Equal(t, experimentDetails.Timeout, chaosDetails.Timeout)
	assert.Equal(t, "default", chaosDetails.AppDetail.Namespace)
	assert.Equal(t, "app=nginx", chaosDetails.AppDetail.Label)
	assert.Equal(t, "retain", chaosDetails.JobCleanupPolicy)
	assert.Equal(t, "Always", chaosDetails.ImagePullPolicy)
}
