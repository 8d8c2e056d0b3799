package config

import "gopkg.in/yaml.v3"

func parseScenarioYAML(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, err
	}
	return s, nil
}
