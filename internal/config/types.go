package config

// DeploymentConfig holds the deployment description parsed from a YAML file.
//
// All fields except EnvVars are required; presence is checked against the raw
// document before decoding so that zero values (port 0, min_replicas 0) are
// distinguishable from missing keys.
type DeploymentConfig struct {
	DeploymentName string `mapstructure:"deployment_name" yaml:"deployment_name"`
	Namespace      string `mapstructure:"namespace" yaml:"namespace"`
	Image          string `mapstructure:"image" yaml:"image"`
	Tag            string `mapstructure:"tag" yaml:"tag"`

	// Container resources, as Kubernetes resource quantity strings.
	CPURequest    string `mapstructure:"cpu_request" yaml:"cpu_request"`
	CPULimit      string `mapstructure:"cpu_limit" yaml:"cpu_limit"`
	MemoryRequest string `mapstructure:"memory_request" yaml:"memory_request"`
	MemoryLimit   string `mapstructure:"memory_limit" yaml:"memory_limit"`

	Port int32 `mapstructure:"port" yaml:"port"`

	// Scaling bounds and the KEDA trigger definition.
	MinReplicas  int32             `mapstructure:"min_replicas" yaml:"min_replicas"`
	MaxReplicas  int32             `mapstructure:"max_replicas" yaml:"max_replicas"`
	ScalerType   string            `mapstructure:"scaler_type" yaml:"scaler_type"`
	ScalerConfig map[string]string `mapstructure:"scaler_config" yaml:"scaler_config"`

	// Optional environment variables for the container.
	EnvVars map[string]string `mapstructure:"env_vars" yaml:"env_vars,omitempty"`
}

// ImageRef returns the full image reference including the tag.
func (c *DeploymentConfig) ImageRef() string {
	return c.Image + ":" + c.Tag
}

// ServiceName returns the name of the Service created for the deployment.
func (c *DeploymentConfig) ServiceName() string {
	return c.DeploymentName + "-service"
}

// ScalerName returns the name of the ScaledObject created for the deployment.
func (c *DeploymentConfig) ScalerName() string {
	return c.DeploymentName + "-scaler"
}
