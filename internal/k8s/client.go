// Package k8s provides the Kubernetes session handle shared by all operations.
package k8s

import (
	"fmt"
	"os"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the typed and dynamic Kubernetes clients. It is constructed
// once at startup and passed by reference to every operation; there is no
// ambient singleton.
type Client struct {
	Clientset  kubernetes.Interface
	Dynamic    dynamic.Interface
	RESTConfig *rest.Config
}

// NewClient creates a Client from a kubeconfig file. When the path is empty
// or the file does not exist, in-cluster configuration is used instead.
func NewClient(kubeconfigPath string) (*Client, error) {
	restConfig, err := BuildRESTConfig(kubeconfigPath)
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	return &Client{
		Clientset:  clientset,
		Dynamic:    dynamicClient,
		RESTConfig: restConfig,
	}, nil
}

// NewFromClients creates a Client from pre-configured clients.
// This is useful for testing with fake clients.
func NewFromClients(clientset kubernetes.Interface, dynamicClient dynamic.Interface) *Client {
	return &Client{
		Clientset: clientset,
		Dynamic:   dynamicClient,
	}
}

// BuildRESTConfig resolves the REST configuration from a kubeconfig path,
// falling back to in-cluster configuration.
func BuildRESTConfig(kubeconfigPath string) (*rest.Config, error) {
	if kubeconfigPath != "" {
		if _, err := os.Stat(kubeconfigPath); err == nil {
			restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
			if err != nil {
				return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
			}
			return restConfig, nil
		}
	}

	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load in-cluster config: %w", err)
	}
	return restConfig, nil
}
