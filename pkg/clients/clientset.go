package clients

import (
	"context"
	"flag"

	chaosClient "github.com/litmuschaos/chaos-operator/pkg/client/clientset/versioned/typed/litmuschaos/v1alpha1"
	"github.com/pkg/errors"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ClientSets is a collection of clientSets and kubeConfig needed
type ClientSets struct {
	KubeClient   kubernetes.Interface
	LitmusClient chaosClient.LitmuschaosV1alpha1Interface
	KubeConfig   *rest.Config
	Context      context.Context
}

var kubeconfig = flag.String("kubeconfig", "", "absolute path to the kubeconfig file")

// GenerateClientSetFromKubeConfig will generation both ClientSets (k8s, and Litmus) as well as the KubeConfig
func (clientSets *ClientSets) GenerateClientSetFromKubeConfig() error {

	config, err := getKubeConfig()
	if err != nil {
		return err
	}
	k8sClientSet, err := kubernetes.NewForConfig(config)
	if err != nil {
		return errors.Wrapf(err, "unable to generate kubernetes clientSet")
	}
	litmusClientSet, err := chaosClient.NewForConfig(config)
	if err != nil {
		return errors.Wrapf(err, "unable to generate litmus clientSet")
	}
	clientSets.KubeClient = k8sClientSet
	clientSets.LitmusClient = litmusClientSet
	clientSets.KubeConfig = config
	if clientSets.Context == nil {
		clientSets.Context = context.Background()
	}
	return nil
}

// getKubeConfig setup the config for access cluster resource
// It uses in-cluster config, if kubeconfig path is not specified
func getKubeConfig() (*rest.Config, error) {
	if !flag.Parsed() {
		flag.Parse()
	}
	config, err := clientcmd.BuildConfigFromFlags("", *kubeconfig)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to build the kubeconfig")
	}
	return config, nil
}

// Ctx returns the context of the chaos run, background is used when none is set
func (clientSets *ClientSets) Ctx() context.Context {
	if clientSets.Context == nil {
		return context.Background()
	}
	return clientSets.Context
}
