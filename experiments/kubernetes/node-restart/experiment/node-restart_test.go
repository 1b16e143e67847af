package experiment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/litmuschaos/chaos-operator/api/litmuschaos/v1alpha1"
	litmusFake "github.com/litmuschaos/chaos-operator/pkg/client/clientset/versioned/fake"
	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

const resultName = "nginx-chaos-vira-node-restart"

func setupEnv(t *testing.T) {
	t.Setenv("CHAOSENGINE", "nginx-chaos")
	t.Setenv("CHAOS_NAMESPACE", "litmus")
	t.Setenv("CHAOS_UID", "uid-1")
	t.Setenv("TOTAL_CHAOS_DURATION", "0")
	t.Setenv("STATUS_CHECK_TIMEOUT", "1")
	t.Setenv("STATUS_CHECK_DELAY", "1")
	t.Setenv("TARGET_NODE", "worker-1")
}

func getResult(t *testing.T, clientSets clients.ClientSets) *v1alpha1.ChaosResult {
	chaosResult, err := clientSets.LitmusClient.ChaosResults("litmus").Get(context.Background(), resultName, metav1.GetOptions{})
	require.NoError(t, err)
	return chaosResult
}

// fakeKubectl puts a kubectl on the PATH which always succeeds
func fakeKubectl(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kubectl"), []byte("#!/bin/sh\nexit 0\n"), 0755))
	t.Setenv("PATH", dir)
}

// restartingNode reports the node NotReady on the second lookup, right after the restart, and Ready otherwise
func restartingNode(kubeClient *fake.Clientset) {
	lookups := 0
	kubeClient.PrependReactor("get", "nodes", func(action k8stesting.Action) (bool, runtime.Object, error) {
		lookups++
		condition := apiv1.ConditionTrue
		if lookups == 2 {
			condition = apiv1.ConditionFalse
		}
		return true, &apiv1.Node{
			ObjectMeta: metav1.ObjectMeta{Name: "worker-1"},
			Status:     apiv1.NodeStatus{Conditions: []apiv1.NodeCondition{{Type: apiv1.NodeReady, Status: condition}}},
		}, nil
	})
}

func TestNodeRestart_Pass(t *testing.T) {
	setupEnv(t)
	fakeKubectl(t)
	kubeClient := fake.NewSimpleClientset()
	restartingNode(kubeClient)
	clientSets := clients.ClientSets{KubeClient: kubeClient, LitmusClient: litmusFake.NewSimpleClientset().LitmuschaosV1alpha1()}

	NodeRestart(clientSets)

	chaosResult := getResult(t, clientSets)
	assert.Equal(t, v1alpha1.ResultVerdictPassed, chaosResult.Status.ExperimentStatus.Verdict)
	assert.Equal(t, v1alpha1.ResultPhaseCompleted, chaosResult.Status.ExperimentStatus.Phase)
	require.NotNil(t, chaosResult.Status.History)
	assert.Equal(t, 1, chaosResult.Status.History.PassedRuns)
	require.Len(t, chaosResult.Status.History.Targets, 1)
	assert.Equal(t, "reverted", chaosResult.Status.History.Targets[0].ChaosStatus)

	eventList, err := kubeClient.CoreV1().Events("litmus").List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	reasons := []string{}
	for _, event := range eventList.Items {
		reasons = append(reasons, event.Reason)
	}
	assert.ElementsMatch(t, []string{"Awaited", "PreChaosCheck", "ChaosInject", "PostChaosCheck", "Pass", "Summary"}, reasons)
}

func TestNodeRestart_InvalidLib(t *testing.T) {
	setupEnv(t)
	t.Setenv("LIB", "powerfulseal")
	clientSets := clients.ClientSets{KubeClient: fake.NewSimpleClientset(), LitmusClient: litmusFake.NewSimpleClientset().LitmuschaosV1alpha1()}

	NodeRestart(clientSets)

	chaosResult := getResult(t, clientSets)
	assert.Equal(t, v1alpha1.ResultVerdictFailed, chaosResult.Status.ExperimentStatus.Verdict)
	require.NotNil(t, chaosResult.Status.ExperimentStatus.ErrorOutput)
	assert.Equal(t, string(cerrors.ErrorTypeGeneric), chaosResult.Status.ExperimentStatus.ErrorOutput.ErrorCode)
	assert.Contains(t, chaosResult.Status.ExperimentStatus.ErrorOutput.Reason, "powerfulseal")
}

func TestNodeRestart_PreChaosCheckFailure(t *testing.T) {
	setupEnv(t)
	t.Setenv("APP_NAMESPACE", "default")
	t.Setenv("APP_LABEL", "app=nginx")
	clientSets := clients.ClientSets{KubeClient: fake.NewSimpleClientset(), LitmusClient: litmusFake.NewSimpleClientset().LitmuschaosV1alpha1()}

	NodeRestart(clientSets)

	chaosResult := getResult(t, clientSets)
	assert.Equal(t, v1alpha1.ResultVerdictFailed, chaosResult.Status.ExperimentStatus.Verdict)
	require.NotNil(t, chaosResult.Status.ExperimentStatus.ErrorOutput)
	assert.Equal(t, string(cerrors.ErrorTypeStatusChecks), chaosResult.Status.ExperimentStatus.ErrorOutput.ErrorCode)
	assert.Contains(t, chaosResult.Status.ExperimentStatus.ErrorOutput.Reason, "PreChaos")
	assert.Equal(t, 1, chaosResult.Status.History.FailedRuns)
}
