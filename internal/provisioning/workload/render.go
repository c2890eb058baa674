package workload

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed manifests/*
var manifestsFS embed.FS

// TemplateData carries the values injected into the workload manifests.
type TemplateData struct {
	Name          string
	Namespace     string
	Image         string
	Replicas      int32
	ContainerPort int
	ServicePort   int
}

// Render produces the combined workload manifests. Template files
// (.yaml.tmpl) are executed with data, plain YAML files are used as-is,
// and documents are joined by YAML separators.
func Render(data TemplateData) ([]byte, error) {
	entries, err := manifestsFS.ReadDir("manifests")
	if err != nil {
		return nil, fmt.Errorf("failed to read manifests directory: %w", err)
	}

	var combined bytes.Buffer

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		content, err := manifestsFS.ReadFile(filepath.Join("manifests", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", name, err)
		}

		var rendered string

		switch {
		case strings.HasSuffix(name, ".yaml.tmpl"):
			tmpl, err := template.New(name).Parse(string(content))
			if err != nil {
				return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
			}

			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
			}
			rendered = buf.String()
		case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
			rendered = string(content)
		default:
			continue
		}

		if combined.Len() > 0 {
			combined.WriteString("\n---\n")
		}
		combined.WriteString(rendered)
	}

	if combined.Len() == 0 {
		return nil, fmt.Errorf("no workload manifests found")
	}

	return combined.Bytes(), nil
}
