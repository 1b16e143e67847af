package events

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
	apiv1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// eventName is unique per reason, resource and message
func eventName(eventsDetails *types.EventDetails) string {
	return fmt.Sprintf("%s%s.%x", eventsDetails.Reason, eventsDetails.ResourceUID, hash(eventsDetails.Message))
}

//CreateEvents create the events in the desired resource
func CreateEvents(eventsDetails *types.EventDetails, clients clients.ClientSets, chaosDetails *types.ChaosDetails, kind string) error {

	now := metav1.Time{Time: time.Now()}
	events := &apiv1.Event{
		ObjectMeta: metav1.ObjectMeta{
			Name:      eventName(eventsDetails),
			Namespace: chaosDetails.ChaosNamespace,
		},
		Source: apiv1.EventSource{
			Component: chaosDetails.ChaosPodName,
		},
		Message:        eventsDetails.Message,
		Reason:         eventsDetails.Reason,
		Type:           eventsDetails.Type,
		Count:          1,
		FirstTimestamp: now,
		LastTimestamp:  now,
		InvolvedObject: apiv1.ObjectReference{
			APIVersion: "litmuschaos.io/v1alpha1",
			Kind:       kind,
			Name:       eventsDetails.ResourceName,
			Namespace:  chaosDetails.ChaosNamespace,
			UID:        eventsDetails.ResourceUID,
		},
	}

	_, err := clients.KubeClient.CoreV1().Events(chaosDetails.ChaosNamespace).Create(clients.Ctx(), events, metav1.CreateOptions{})
	return err
}

//GenerateEvents update the events and increase the count by 1, if already present
// else it will create a new event
func GenerateEvents(eventsDetails *types.EventDetails, clients clients.ClientSets, chaosDetails *types.ChaosDetails, kind string) error {

	event, err := clients.KubeClient.CoreV1().Events(chaosDetails.ChaosNamespace).Get(clients.Ctx(), eventName(eventsDetails), metav1.GetOptions{})
	switch {
	case k8serrors.IsNotFound(err):
		err = CreateEvents(eventsDetails, clients, chaosDetails, kind)
	case err == nil:
		event.LastTimestamp = metav1.Time{Time: time.Now()}
		event.Count = event.Count + 1
		_, err = clients.KubeClient.CoreV1().Events(chaosDetails.ChaosNamespace).Update(clients.Ctx(), event, metav1.UpdateOptions{})
	}
	if err != nil {
		log.Warnf("unable to generate %v event for %v %v, err: %v", eventsDetails.Reason, kind, eventsDetails.ResourceName, err)
	}
	return err
}

func hash(message string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(message))
	return h.Sum32()
}
