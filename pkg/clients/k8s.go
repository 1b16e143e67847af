package clients

import (
	"time"

	core_v1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/litmuschaos/litmus-go-vira/pkg/utils/retry"
)

// GetNode returns the node, a missing node is reported at once instead of being retried
func (clients *ClientSets) GetNode(name string, timeout, delay int) (*core_v1.Node, error) {
	var (
		node *core_v1.Node
		err  error
	)

	if err := retry.
		Times(retry.Attempts(timeout, delay)).
		Wait(time.Duration(delay) * time.Second).
		StopOn(k8serrors.IsNotFound).
		Try(func(attempt uint) error {
			node, err = clients.KubeClient.CoreV1().Nodes().Get(clients.Ctx(), name, v1.GetOptions{})
			return err
		}); err != nil {
		return nil, err
	}

	return node, nil
}

func (clients *ClientSets) ListNode(labels string, timeout, delay int) (*core_v1.NodeList, error) {
	var (
		nodes *core_v1.NodeList
		err   error
	)

	if err := retry.
		Times(retry.Attempts(timeout, delay)).
		Wait(time.Duration(delay) * time.Second).
		Try(func(attempt uint) error {
			nodes, err = clients.KubeClient.CoreV1().Nodes().List(clients.Ctx(), v1.ListOptions{
				LabelSelector: labels,
			})
			return err
		}); err != nil {
		return nil, err
	}

	return nodes, nil
}

func (clients *ClientSets) ListPods(namespace, labels string, timeout, delay int) (*core_v1.PodList, error) {
	var (
		pods *core_v1.PodList
		err  error
	)

	if err := retry.
		Times(retry.Attempts(timeout, delay)).
		Wait(time.Duration(delay) * time.Second).
		Try(func(attempt uint) error {
			pods, err = clients.KubeClient.CoreV1().Pods(namespace).List(clients.Ctx(), v1.ListOptions{
				LabelSelector: labels,
			})
			return err
		}); err != nil {
		return nil, err
	}

	return pods, nil
}
