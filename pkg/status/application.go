package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"github.com/litmuschaos/litmus-go-vira/pkg/utils/retry"
	logrus "github.com/sirupsen/logrus"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// CheckApplicationStatus checks the status of the AUT
// the checks are skipped if the application label is not provided
func CheckApplicationStatus(appNs, appLabel, containerName string, timeout, delay int, clients clients.ClientSets) error {

	switch appLabel {
	case "":
		log.Info("[Status]: No appLabels provided, skipping the application status checks")
	default:
		log.Info("[Status]: Checking whether application containers are in ready state")
		if err := CheckContainerStatus(appNs, appLabel, containerName, timeout, delay, clients); err != nil {
			return err
		}
		log.Info("[Status]: Checking whether application pods are in running state")
		if err := CheckPodStatus(appNs, appLabel, timeout, delay, clients); err != nil {
			return err
		}
	}
	return nil
}

// CheckAuxiliaryApplicationStatus checks the status of the Auxiliary applications
// the details are provided in namespace:label format, separated by comma
func CheckAuxiliaryApplicationStatus(auxiliaryAppDetails string, timeout, delay int, clients clients.ClientSets) error {

	for _, val := range strings.Split(auxiliaryAppDetails, ",") {
		appInfo := strings.SplitN(strings.TrimSpace(val), ":", 2)
		if len(appInfo) != 2 || appInfo[0] == "" || appInfo[1] == "" {
			return cerrors.Error{ErrorCode: cerrors.ErrorTypeStatusChecks, Target: val, Reason: "auxiliary application details should be in namespace:label format"}
		}
		if err := CheckApplicationStatus(appInfo[0], appInfo[1], "", timeout, delay, clients); err != nil {
			return err
		}
	}
	return nil
}

// CheckPodStatus checks the running status of the application pod
func CheckPodStatus(appNs, appLabel string, timeout, delay int, clients clients.ClientSets) error {
	return retry.
		Times(retry.Attempts(timeout, delay)).
		Wait(time.Duration(delay) * time.Second).
		Try(func(attempt uint) error {
			podList, err := listPods(appNs, appLabel, clients)
			if err != nil {
				return err
			}
			for _, pod := range podList.Items {
				if pod.Status.Phase != v1.PodRunning {
					return cerrors.Error{ErrorCode: cerrors.ErrorTypeStatusChecks, Target: fmt.Sprintf("{podName: %s, namespace: %s}", pod.Name, pod.Namespace), Reason: fmt.Sprintf("pod is in %s state", pod.Status.Phase)}
				}
				log.InfoWithValues("[Status]: The status of Pods are as follows", logrus.Fields{
					"Pod": pod.Name, "Status": pod.Status.Phase})
			}
			return nil
		})
}

// CheckContainerStatus checks the status of the application container
// all the containers are checked if the container name is not provided
func CheckContainerStatus(appNs, appLabel, containerName string, timeout, delay int, clients clients.ClientSets) error {
	return retry.
		Times(retry.Attempts(timeout, delay)).
		Wait(time.Duration(delay) * time.Second).
		Try(func(attempt uint) error {
			podList, err := listPods(appNs, appLabel, clients)
			if err != nil {
				return err
			}
			for _, pod := range podList.Items {
				for _, container := range pod.Status.ContainerStatuses {
					if containerName != "" && container.Name != containerName {
						continue
					}
					if err := validateContainerStatus(container, pod.Name, pod.Namespace); err != nil {
						return err
					}
				}
			}
			return nil
		})
}

func validateContainerStatus(container v1.ContainerStatus, podName, namespace string) error {
	target := fmt.Sprintf("{podName: %s, namespace: %s, container: %s}", podName, namespace, container.Name)
	if container.State.Terminated != nil {
		return cerrors.Error{ErrorCode: cerrors.ErrorTypeStatusChecks, Target: target, Reason: "container is in terminated state"}
	}
	if !container.Ready {
		return cerrors.Error{ErrorCode: cerrors.ErrorTypeStatusChecks, Target: target, Reason: "container is not in running state"}
	}
	log.InfoWithValues("[Status]: The Container status are as follows", logrus.Fields{
		"container": container.Name, "Pod": podName, "Readiness": container.Ready})
	return nil
}

func listPods(appNs, appLabel string, clients clients.ClientSets) (*v1.PodList, error) {
	podList, err := clients.KubeClient.CoreV1().Pods(appNs).List(clients.Ctx(), metav1.ListOptions{LabelSelector: appLabel})
	if err != nil {
		return nil, cerrors.Error{ErrorCode: cerrors.ErrorTypeStatusChecks, Target: fmt.Sprintf("{podLabel: %s, namespace: %s}", appLabel, appNs), Reason: err.Error()}
	} else if len(podList.Items) == 0 {
		return nil, cerrors.Error{ErrorCode: cerrors.ErrorTypeStatusChecks, Target: fmt.Sprintf("{podLabel: %s, namespace: %s}", appLabel, appNs), Reason: "no pod found with matching labels"}
	}
	return podList, nil
}
