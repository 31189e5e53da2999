// Package content holds the static page text of the dashboard, authored in an
// embedded YAML document.
package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed dashboard.yaml
var dashboardYAML []byte

// Section is the text of one tab
type Section struct {
	Heading      string `yaml:"heading"`
	Blurb        string `yaml:"blurb"`
	ChartHeading string `yaml:"chart_heading"`
	ChartTitle   string `yaml:"chart_title"`
}

// QASection is the text of the question-answering tab
type QASection struct {
	Heading  string   `yaml:"heading"`
	Blurb    string   `yaml:"blurb"`
	Context  string   `yaml:"context"`
	Examples []string `yaml:"examples"`
}

// Dashboard is the full static content of the page
type Dashboard struct {
	Title        string    `yaml:"title"`
	PrimaryColor string    `yaml:"primary_color"`
	Stock        Section   `yaml:"stock"`
	Risk         Section   `yaml:"risk"`
	QA           QASection `yaml:"qa"`
}

// Load parses the embedded dashboard content
func Load() (*Dashboard, error) {
	return Parse(dashboardYAML)
}

// Parse decodes dashboard content from YAML
func Parse(data []byte) (*Dashboard, error) {
	var d Dashboard
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dashboard content: %w", err)
	}
	if d.QA.Context == "" {
		return nil, errors.New("dashboard content: qa.context is required")
	}
	if d.PrimaryColor == "" {
		d.PrimaryColor = "#0B5394"
	}
	return &d, nil
}
