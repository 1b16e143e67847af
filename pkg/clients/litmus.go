package clients

import (
	"fmt"
	"time"

	"github.com/litmuschaos/chaos-operator/api/litmuschaos/v1alpha1"
	"github.com/litmuschaos/litmus-go-vira/pkg/cerrors"
	"github.com/litmuschaos/litmus-go-vira/pkg/types"
	"github.com/litmuschaos/litmus-go-vira/pkg/utils/retry"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// GetChaosResult returns the chaosresult of the current run, nil if it is not created yet
func (clients *ClientSets) GetChaosResult(chaosDetails *types.ChaosDetails, name string) (*v1alpha1.ChaosResult, error) {
	var result *v1alpha1.ChaosResult

	err := retry.
		Times(retry.Attempts(chaosDetails.Timeout, chaosDetails.Delay)).
		Wait(time.Duration(chaosDetails.Delay) * time.Second).
		Try(func(attempt uint) error {
			res, err := clients.LitmusClient.ChaosResults(chaosDetails.ChaosNamespace).Get(clients.Ctx(), name, v1.GetOptions{})
			if err != nil {
				if k8serrors.IsNotFound(err) {
					return nil
				}
				return cerrors.Error{ErrorCode: cerrors.ErrorTypeChaosResultCRUD, Reason: err.Error(), Target: fmt.Sprintf("{name: %s, namespace: %s}", name, chaosDetails.ChaosNamespace)}
			}
			result = res
			return nil
		})
	return result, err
}

// CreateChaosResult creates the chaosresult, it reports whether the chaosresult already existed
func (clients *ClientSets) CreateChaosResult(chaosDetails *types.ChaosDetails, result *v1alpha1.ChaosResult) (bool, error) {
	var exists bool

	err := retry.
		Times(retry.Attempts(chaosDetails.Timeout, chaosDetails.Delay)).
		Wait(time.Duration(chaosDetails.Delay) * time.Second).
		Try(func(attempt uint) error {
			_, err := clients.LitmusClient.ChaosResults(chaosDetails.ChaosNamespace).Create(clients.Ctx(), result, v1.CreateOptions{})
			if err != nil {
				if k8serrors.IsAlreadyExists(err) {
					exists = true
					return nil
				}
				return cerrors.Error{ErrorCode: cerrors.ErrorTypeChaosResultCRUD, Reason: err.Error(), Target: fmt.Sprintf("{name: %s, namespace: %s}", result.Name, chaosDetails.ChaosNamespace)}
			}
			return nil
		})

	return exists, err
}

func (clients *ClientSets) UpdateChaosResult(chaosDetails *types.ChaosDetails, result *v1alpha1.ChaosResult) error {
	return retry.
		Times(retry.Attempts(chaosDetails.Timeout, chaosDetails.Delay)).
		Wait(time.Duration(chaosDetails.Delay) * time.Second).
		Try(func(attempt uint) error {
			if _, err := clients.LitmusClient.ChaosResults(chaosDetails.ChaosNamespace).Update(clients.Ctx(), result, v1.UpdateOptions{}); err != nil {
				return cerrors.Error{ErrorCode: cerrors.ErrorTypeChaosResultCRUD, Reason: err.Error(), Target: fmt.Sprintf("{name: %s, namespace: %s}", result.Name, chaosDetails.ChaosNamespace)}
			}
			return nil
		})
}
