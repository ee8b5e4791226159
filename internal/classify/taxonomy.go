// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Subject pairs a taxonomy label with its trigger terms. Trigger terms are
// short domain phrases; a literal occurrence in the paper text is the
// classification signal, so every scored subject can show which terms
// fired. Declaration order is the tie-break order for equal percentages.
type Subject struct {
	Label    string   `yaml:"label"`
	Triggers []string `yaml:"triggers"`
}

// Taxonomy is an ordered list of subjects. The zero value classifies
// nothing; use DefaultTaxonomy or LoadTaxonomy.
type Taxonomy []Subject

// DefaultTaxonomy returns the built-in subject table. It can be replaced
// wholesale by a YAML file without a code change.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{Label: "人工智能", Triggers: []string{
			"reinforcement learning", "neural network", "deep learning",
			"machine learning", "transformer", "人工智能", "神经网络",
		}},
		{Label: "电力电子", Triggers: []string{
			"pwm", "converter", "voltage source", "rectifier", "inverter",
			"power electronics", "电力电子", "整流器",
		}},
		{Label: "控制工程", Triggers: []string{
			"pi control", "controller", "feedback", "pid", "control strategy",
			"控制", "反馈",
		}},
		{Label: "通信技术", Triggers: []string{
			"5g", "antenna", "signal processing", "wireless", "channel estimation",
			"通信", "天线",
		}},
		{Label: "生物医学", Triggers: []string{
			"gene", "clinical", "medical", "protein", "diagnosis",
			"基因", "临床",
		}},
	}
}

// taxonomyFile is the YAML shape of a replacement taxonomy.
type taxonomyFile struct {
	Subjects Taxonomy `yaml:"subjects"`
}

// LoadTaxonomy reads a replacement taxonomy from a YAML file. Subjects
// keep their file order.
func LoadTaxonomy(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}
	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	if len(tf.Subjects) == 0 {
		return nil, fmt.Errorf("taxonomy %s defines no subjects", path)
	}
	for i, s := range tf.Subjects {
		if s.Label == "" {
			return nil, fmt.Errorf("taxonomy %s: subject %d has no label", path, i)
		}
		if len(s.Triggers) == 0 {
			return nil, fmt.Errorf("taxonomy %s: subject %q has no triggers", path, s.Label)
		}
	}
	return tf.Subjects, nil
}
