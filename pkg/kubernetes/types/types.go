package types

import (
	clientTypes "k8s.io/apimachinery/pkg/types"
)

// ExperimentDetails is for collecting all the experiment-related details
// It is filled once per run and read by the chaoslib and the status checks afterwards
type ExperimentDetails struct {
	ExperimentName      string
	EngineName          string
	ChaosDuration       int
	ChaosInterval       int
	RampTime            int
	Force               bool
	ChaosLib            string
	ChaosServiceAccount string
	AppNS               string
	AppLabel            string
	ChaosInjectCmd      string
	AppKind             string
	NodeLabel           string
	InstanceID          string
	ChaosUID            clientTypes.UID
	ChaosNamespace      string
	ChaosPodName        string
	Timeout             int
	Delay               int
	TargetPods          string
	PodsAffectedPerc    int
	ChaosKillCmd        string
	LIBImagePullPolicy  string
	TargetContainer     string
}

// Option sets a single attribute of the ExperimentDetails
type Option func(*ExperimentDetails)

// NewExperimentDetails builds the ExperimentDetails from the given options
// unset attributes keep their zero value, no validation is performed
func NewExperimentDetails(opts ...Option) ExperimentDetails {
	experimentDetails := ExperimentDetails{}
	for _, opt := range opts {
		if opt != nil {
			opt(&experimentDetails)
		}
	}
	return experimentDetails
}

func WithExperimentName(name string) Option {
	return func(e *ExperimentDetails) { e.ExperimentName = name }
}

func WithEngineName(name string) Option {
	return func(e *ExperimentDetails) { e.EngineName = name }
}

// WithChaosDuration sets the total chaos duration (in seconds)
func WithChaosDuration(duration int) Option {
	return func(e *ExperimentDetails) { e.ChaosDuration = duration }
}

// WithChaosInterval sets the interval between successive chaos iterations (in seconds)
func WithChaosInterval(interval int) Option {
	return func(e *ExperimentDetails) { e.ChaosInterval = interval }
}

// WithRampTime sets the wait before and after the chaos injection (in seconds)
func WithRampTime(rampTime int) Option {
	return func(e *ExperimentDetails) { e.RampTime = rampTime }
}

func WithForce(force bool) Option {
	return func(e *ExperimentDetails) { e.Force = force }
}

func WithChaosLib(lib string) Option {
	return func(e *ExperimentDetails) { e.ChaosLib = lib }
}

func WithChaosServiceAccount(serviceAccount string) Option {
	return func(e *ExperimentDetails) { e.ChaosServiceAccount = serviceAccount }
}

func WithAppNS(namespace string) Option {
	return func(e *ExperimentDetails) { e.AppNS = namespace }
}

func WithAppLabel(label string) Option {
	return func(e *ExperimentDetails) { e.AppLabel = label }
}

func WithChaosInjectCmd(cmd string) Option {
	return func(e *ExperimentDetails) { e.ChaosInjectCmd = cmd }
}

func WithAppKind(kind string) Option {
	return func(e *ExperimentDetails) { e.AppKind = kind }
}

func WithNodeLabel(label string) Option {
	return func(e *ExperimentDetails) { e.NodeLabel = label }
}

func WithInstanceID(instanceID string) Option {
	return func(e *ExperimentDetails) { e.InstanceID = instanceID }
}

// WithUID sets the uid of the chaos run, it is exposed as ChaosUID
func WithUID(uid string) Option {
	return func(e *ExperimentDetails) { e.ChaosUID = clientTypes.UID(uid) }
}

func WithChaosNamespace(namespace string) Option {
	return func(e *ExperimentDetails) { e.ChaosNamespace = namespace }
}

func WithChaosPodName(podName string) Option {
	return func(e *ExperimentDetails) { e.ChaosPodName = podName }
}

// WithTimeout sets the status check timeout (in seconds)
func WithTimeout(timeout int) Option {
	return func(e *ExperimentDetails) { e.Timeout = timeout }
}

// WithDelay sets the delay between status check retries (in seconds)
func WithDelay(delay int) Option {
	return func(e *ExperimentDetails) { e.Delay = delay }
}

func WithTargetPods(targetPods string) Option {
	return func(e *ExperimentDetails) { e.TargetPods = targetPods }
}

func WithPodsAffectedPerc(perc int) Option {
	return func(e *ExperimentDetails) { e.PodsAffectedPerc = perc }
}

func WithChaosKillCmd(cmd string) Option {
	return func(e *ExperimentDetails) { e.ChaosKillCmd = cmd }
}

// WithSequence accepts the SEQUENCE input of the chaos engine
// the value is not stored, the node-restart chaos always targets a single node
func WithSequence(_ string) Option {
	return func(*ExperimentDetails) {}
}

func WithLIBImagePullPolicy(policy string) Option {
	return func(e *ExperimentDetails) { e.LIBImagePullPolicy = policy }
}

func WithTargetContainer(container string) Option {
	return func(e *ExperimentDetails) { e.TargetContainer = container }
}
