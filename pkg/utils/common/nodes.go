package common

import (
	"fmt"
	"math/rand"

	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/palantir/stacktrace"
	apiv1 "k8s.io/api/core/v1"
)

//GetNodeName will select a random replica of application pod and return the node name of that application pod
// if the node label is provided it selects a random node with matching labels instead
func GetNodeName(namespace, labels, nodeLabel string, timeout, delay int, clients clients.ClientSets) (string, error) {

	switch nodeLabel {
	case "":
		if labels == "" {
			return "", cerrors.Error{ErrorCode: cerrors.ErrorTypeTargetSelection, Reason: "neither node label nor application label is provided"}
		}
		podList, err := clients.ListPods(namespace, labels, timeout, delay)
		if err != nil {
			return "", cerrors.Error{ErrorCode: cerrors.ErrorTypeTargetSelection, Target: fmt.Sprintf("{podLabel: %s, namespace: %s}", labels, namespace), Reason: err.Error()}
		}
		scheduled := []apiv1.Pod{}
		for _, pod := range podList.Items {
			if pod.Spec.NodeName != "" {
				scheduled = append(scheduled, pod)
			}
		}
		if len(scheduled) == 0 {
			return "", cerrors.Error{ErrorCode: cerrors.ErrorTypeTargetSelection, Target: fmt.Sprintf("{podLabel: %s, namespace: %s}", labels, namespace), Reason: "no scheduled pod found with matching labels"}
		}
		return scheduled[rand.Intn(len(scheduled))].Spec.NodeName, nil
	default:
		nodeList, err := getNodesByLabels(nodeLabel, timeout, delay, clients)
		if err != nil {
			return "", stacktrace.Propagate(err, "could not get nodes by labels")
		}
		return nodeList.Items[rand.Intn(len(nodeList.Items))].Name, nil
	}
}

func getNodesByLabels(nodeLabel string, timeout, delay int, clients clients.ClientSets) (*apiv1.NodeList, error) {
	nodeList, err := clients.ListNode(nodeLabel, timeout, delay)
	if err != nil {
		return nil, cerrors.Error{ErrorCode: cerrors.ErrorTypeTargetSelection, Target: fmt.Sprintf("{nodeLabel: %s}", nodeLabel), Reason: err.Error()}
	} else if len(nodeList.Items) == 0 {
		return nil, cerrors.Error{ErrorCode: cerrors.ErrorTypeTargetSelection, Target: fmt.Sprintf("{nodeLabel: %s}", nodeLabel), Reason: "no node found with matching labels"}
	}
	return nodeList, nil
}
