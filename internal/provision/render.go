package provision

import (
	"bytes"
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/kedactl/kedactl/internal/config"
)

// RenderManifests renders the deployment, service, and ScaledObject as a
// multi-document YAML stream without touching the cluster.
func RenderManifests(cfg *config.DeploymentConfig) ([]byte, error) {
	deployment, err := buildDeployment(cfg)
	if err != nil {
		return nil, err
	}

	objects := []interface{}{
		deployment,
		buildService(cfg),
		buildScaledObject(cfg).Object,
	}

	var buf bytes.Buffer
	for i, obj := range objects {
		if i > 0 {
			buf.WriteString("---\n")
		}
		data, err := yaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to render manifest: %w", err)
		}
		buf.Write(data)
	}

	return buf.Bytes(), nil
}
