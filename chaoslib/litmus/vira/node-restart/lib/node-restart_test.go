package lib

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/litmuschaos/chaos-operator/api/litmuschaos/v1alpha1"
	litmusFake "github.com/litmuschaos/chaos-operator/pkg/client/clientset/versioned/fake"
	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	experimentTypes "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/node-restart/types"
	kubeTypes "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/types"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
	"github.com/palantir/stacktrace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func newClients(objects ...*apiv1.Node) clients.ClientSets {
	kubeClient := fake.NewSimpleClientset()
	for _, node := range objects {
		_, _ = kubeClient.CoreV1().Nodes().Create(context.Background(), node, metav1.CreateOptions{})
	}
	return clients.ClientSets{
		KubeClient:   kubeClient,
		LitmusClient: litmusFake.NewSimpleClientset().LitmuschaosV1alpha1(),
	}
}

// recordingKubectl puts a kubectl on the PATH which leaves a marker file behind when invoked
func recordingKubectl(t *testing.T) string {
	dir := t.TempDir()
	marker := filepath.Join(dir, "invoked")
	script := "#!/bin/sh\n: > " + marker + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kubectl"), []byte(script), 0755))
	t.Setenv("PATH", dir)
	return marker
}

// withoutKubectl makes every kubectl invocation fail fast
func withoutKubectl(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
}

func TestRebootCommand(t *testing.T) {
	tests := []struct {
		name    string
		details experimentTypes.ExperimentDetails
		want    string
	}{
		{"default", experimentTypes.ExperimentDetails{}, DefaultRebootCommand},
		{"force", experimentTypes.ExperimentDetails{ExperimentDetails: kubeTypes.NewExperimentDetails(kubeTypes.WithForce(true))}, ForceRebootCommand},
		{"custom command wins over force", experimentTypes.ExperimentDetails{ExperimentDetails: kubeTypes.NewExperimentDetails(kubeTypes.WithForce(true), kubeTypes.WithChaosInjectCmd("systemctl reboot"))}, "systemctl reboot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rebootCommand(&tt.details))
		})
	}
}

func TestForceRebootCommandIsDetached(t *testing.T) {
	assert.Contains(t, ForceRebootCommand, "reboot -f")
	assert.True(t, strings.HasPrefix(ForceRebootCommand, "nohup "))
	assert.True(t, strings.HasSuffix(ForceRebootCommand, "&"))
}

func TestDefaultRebootFitsStatusTimeout(t *testing.T) {
	// the scheduled reboot must fire well inside the default 180s status check
	assert.Equal(t, "shutdown -r +1", DefaultRebootCommand)
}

func TestCancelCommand(t *testing.T) {
	assert.Equal(t, DefaultCancelCommand, cancelCommand(&experimentTypes.ExperimentDetails{}))

	details := experimentTypes.ExperimentDetails{ExperimentDetails: kubeTypes.NewExperimentDetails(kubeTypes.WithChaosKillCmd("systemctl cancel"))}
	assert.Equal(t, "systemctl cancel", cancelCommand(&details))
}

func TestNodeShellCommand(t *testing.T) {
	cmd := nodeShellCommand(clients.ClientSets{}, "worker-1", "shutdown -r +1")
	assert.Equal(t, []string{"kubectl", "node-shell", "worker-1", "--", "sh", "-c", "shutdown -r +1"}, cmd.Args)
}

func TestSelectTargetNode(t *testing.T) {
	clientSets := newClients(
		&apiv1.Node{ObjectMeta: metav1.ObjectMeta{Name: "worker-1"}},
		&apiv1.Node{ObjectMeta: metav1.ObjectMeta{Name: "worker-2", Labels: map[string]string{"pool": "chaos"}}},
	)

	details := experimentTypes.ExperimentDetails{TargetNode: "worker-1"}
	node, err := selectTargetNode(&details, clientSets)
	require.NoError(t, err)
	assert.Equal(t, "worker-1", node)

	details = experimentTypes.ExperimentDetails{TargetNode: "worker-9"}
	_, err = selectTargetNode(&details, clientSets)
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrorTypeTargetSelection, cerrors.GetErrorType(err))

	details = experimentTypes.ExperimentDetails{ExperimentDetails: kubeTypes.NewExperimentDetails(kubeTypes.WithNodeLabel("pool=chaos"))}
	node, err = selectTargetNode(&details, clientSets)
	require.NoError(t, err)
	assert.Equal(t, "worker-2", node)
}

func TestPrepareNodeRestart_NoTarget(t *testing.T) {
	clientSets := newClients()
	details := experimentTypes.ExperimentDetails{ExperimentDetails: kubeTypes.NewExperimentDetails(kubeTypes.WithTimeout(1), kubeTypes.WithDelay(1))}

	err := PrepareNodeRestart(&details, clientSets, &types.ResultDetails{}, &types.EventDetails{}, &types.ChaosDetails{})
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrorTypeTargetSelection, cerrors.GetErrorType(stacktrace.RootCause(err)))
}

func TestPrepareNodeRestart_InjectFailure(t *testing.T) {
	withoutKubectl(t)
	clientSets := newClients(&apiv1.Node{ObjectMeta: metav1.ObjectMeta{Name: "worker-1"}})
	details := experimentTypes.ExperimentDetails{
		ExperimentDetails: kubeTypes.NewExperimentDetails(
			kubeTypes.WithExperimentName("vira-node-restart"),
			kubeTypes.WithEngineName("nginx-chaos"),
			kubeTypes.WithTimeout(1),
			kubeTypes.WithDelay(1),
		),
		TargetNode: "worker-1",
	}
	chaosDetails := &types.ChaosDetails{ChaosNamespace: "litmus", EngineName: "nginx-chaos", ExperimentName: "vira-node-restart"}

	err := PrepareNodeRestart(&details, clientSets, &types.ResultDetails{}, &types.EventDetails{}, chaosDetails)
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrorTypeChaosInject, cerrors.GetErrorType(stacktrace.RootCause(err)))

	require.Len(t, chaosDetails.Targets, 1)
	assert.Equal(t, "targeted", chaosDetails.Targets[0].ChaosStatus)

	eventList, err := clientSets.KubeClient.CoreV1().Events("litmus").List(clientSets.Ctx(), metav1.ListOptions{})
	require.NoError(t, err)
	require.Len(t, eventList.Items, 1)
	assert.Equal(t, types.ChaosInject, eventList.Items[0].Reason)
}

func TestAbortWatcher(t *testing.T) {
	withoutKubectl(t)
	exitCode := make(chan int, 1)
	exit = func(code int) { exitCode <- code }
	defer func() { exit = os.Exit }()

	clientSets := newClients()
	chaosDetails := &types.ChaosDetails{ChaosNamespace: "litmus", ExperimentName: "vira-node-restart", Timeout: 1, Delay: 1}
	resultDetails := &types.ResultDetails{}
	types.SetResultAttributes(resultDetails, *chaosDetails)
	_, err := clientSets.LitmusClient.ChaosResults("litmus").Create(clientSets.Ctx(), &v1alpha1.ChaosResult{
		ObjectMeta: metav1.ObjectMeta{Name: resultDetails.Name, Namespace: "litmus"},
		Status:     v1alpha1.ChaosResultStatus{History: &v1alpha1.HistoryDetails{}},
	}, metav1.CreateOptions{})
	require.NoError(t, err)

	abort := make(chan os.Signal, 1)
	go abortWatcher(abort, "worker-1", &experimentTypes.ExperimentDetails{}, clientSets, resultDetails, chaosDetails, &types.EventDetails{})
	abort <- syscall.SIGTERM

	select {
	case code := <-exitCode:
		assert.Equal(t, 1, code)
	case <-time.After(10 * time.Second):
		t.Fatal("abort watcher did not exit")
	}

	chaosResult, err := clientSets.LitmusClient.ChaosResults("litmus").Get(clientSets.Ctx(), resultDetails.Name, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.ResultVerdictStopped, chaosResult.Status.ExperimentStatus.Verdict)
}

func TestPrepareNodeRestart_AbortDuringRamp(t *testing.T) {
	marker := recordingKubectl(t)
	exitCode := make(chan int, 1)
	exit = func(code int) { exitCode <- code }
	defer func() { exit = os.Exit }()

	clientSets := newClients(&apiv1.Node{ObjectMeta: metav1.ObjectMeta{Name: "worker-1"}})
	chaosDetails := &types.ChaosDetails{ChaosNamespace: "litmus", ExperimentName: "vira-node-restart", Timeout: 1, Delay: 1}
	resultDetails := &types.ResultDetails{}
	types.SetResultAttributes(resultDetails, *chaosDetails)
	_, err := clientSets.LitmusClient.ChaosResults("litmus").Create(clientSets.Ctx(), &v1alpha1.ChaosResult{
		ObjectMeta: metav1.ObjectMeta{Name: resultDetails.Name, Namespace: "litmus"},
		Status:     v1alpha1.ChaosResultStatus{History: &v1alpha1.HistoryDetails{}},
	}, metav1.CreateOptions{})
	require.NoError(t, err)

	details := experimentTypes.ExperimentDetails{
		ExperimentDetails: kubeTypes.NewExperimentDetails(kubeTypes.WithRampTime(30), kubeTypes.WithTimeout(1), kubeTypes.WithDelay(1)),
		TargetNode:        "worker-1",
	}
	abort := make(chan os.Signal, 1)
	abort <- syscall.SIGTERM

	start := time.Now()
	err = prepareNodeRestart(abort, &details, clientSets, resultDetails, &types.EventDetails{}, chaosDetails)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, <-exitCode)

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr), "kubectl must not run once aborted")

	chaosResult, err := clientSets.LitmusClient.ChaosResults("litmus").Get(clientSets.Ctx(), resultDetails.Name, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.ResultVerdictStopped, chaosResult.Status.ExperimentStatus.Verdict)
	assert.Equal(t, v1alpha1.ResultPhaseCompleted, chaosResult.Status.ExperimentStatus.Phase)
	assert.Empty(t, chaosDetails.Targets)
}

func TestPrepareNodeRestart_AbortBeforeRestart(t *testing.T) {
	marker := recordingKubectl(t)
	exitCode := make(chan int, 1)
	exit = func(code int) { exitCode <- code }
	defer func() { exit = os.Exit }()

	clientSets := newClients(&apiv1.Node{ObjectMeta: metav1.ObjectMeta{Name: "worker-1"}})
	chaosDetails := &types.ChaosDetails{ChaosNamespace: "litmus", ExperimentName: "vira-node-restart", Timeout: 1, Delay: 1}
	details := experimentTypes.ExperimentDetails{
		ExperimentDetails: kubeTypes.NewExperimentDetails(kubeTypes.WithTimeout(1), kubeTypes.WithDelay(1)),
		TargetNode:        "worker-1",
	}
	abort := make(chan os.Signal, 1)
	abort <- syscall.SIGINT

	err := prepareNodeRestart(abort, &details, clientSets, &types.ResultDetails{}, &types.EventDetails{}, chaosDetails)
	require.Error(t, err)
	assert.Equal(t, 1, <-exitCode)

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr))
}
