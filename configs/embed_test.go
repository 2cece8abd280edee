package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestProjectConfigTemplate_IsValidYAML(t *testing.T) {
	require.NotEmpty(t, ProjectConfigTemplate)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(ProjectConfigTemplate), &parsed))
	assert.Equal(t, 1, parsed["version"])
	assert.Contains(t, parsed, "php")
	assert.Contains(t, parsed, "evaluators")
}
