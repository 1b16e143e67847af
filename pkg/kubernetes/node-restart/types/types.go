package types

import (
	kubeTypes "github.com/litmuschaos/litmus-go-vira/pkg/kubernetes/types"
)

// ExperimentDetails is for collecting all the node-restart details
// the common experiment attributes are embedded from the kubernetes experiment details
type ExperimentDetails struct {
	kubeTypes.ExperimentDetails
	TargetNode       string
	AuxiliaryAppInfo string
}
