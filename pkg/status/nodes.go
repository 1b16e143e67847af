package status

import (
	"fmt"
	"time"

	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"github.com/litmuschaos/litmus-go-vira/pkg/utils/retry"
	logrus "github.com/sirupsen/logrus"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// CheckNodeStatus checks that the target node is in ready state
func CheckNodeStatus(nodeName string, timeout, delay int, clients clients.ClientSets) error {
	return waitForNodeReadiness(nodeName, true, timeout, delay, clients)
}

// CheckNodeNotReadyState checks that the target node went to NotReady state after the chaos injection
func CheckNodeNotReadyState(nodeName string, timeout, delay int, clients clients.ClientSets) error {
	return waitForNodeReadiness(nodeName, false, timeout, delay, clients)
}

func waitForNodeReadiness(nodeName string, ready bool, timeout, delay int, clients clients.ClientSets) error {
	return retry.
		Times(retry.Attempts(timeout, delay)).
		Wait(time.Duration(delay) * time.Second).
		Try(func(attempt uint) error {
			node, err := clients.KubeClient.CoreV1().Nodes().Get(clients.Ctx(), nodeName, metav1.GetOptions{})
			if err != nil {
				return cerrors.Error{ErrorCode: cerrors.ErrorTypeStatusChecks, Target: fmt.Sprintf("{nodeName: %s}", nodeName), Reason: err.Error()}
			}
			isReady := IsNodeReady(node)
			if isReady != ready {
				state := "Ready"
				if !ready {
					state = "NotReady"
				}
				return cerrors.Error{ErrorCode: cerrors.ErrorTypeStatusChecks, Target: fmt.Sprintf("{nodeName: %s}", nodeName), Reason: fmt.Sprintf("node is not in %s state", state)}
			}
			log.InfoWithValues("[Status]: The Node status are as follows", logrus.Fields{
				"Node": node.Name, "Ready": isReady})
			return nil
		})
}

// IsNodeReady reports whether the NodeReady condition is true
func IsNodeReady(node *apiv1.Node) bool {
	for _, condition := range node.Status.Conditions {
		if condition.Type == apiv1.NodeReady {
			return condition.Status == apiv1.ConditionTrue
		}
	}
	return false
}
