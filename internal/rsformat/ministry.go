package rsformat

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed ministry.yaml
var ministryYAML []byte

type ministryMaster struct {
	Ministries []struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"ministries"`
	Variants map[string]string `yaml:"variants"`
}

var master = func() ministryMaster {
	var m ministryMaster
	if err := yaml.Unmarshal(ministryYAML, &m); err != nil {
		panic("rsformat: invalid ministry master: " + err.Error())
	}
	return m
}()

// CanonicalMinistry folds known spelling variants of a ministry name to the
// master spelling. Unknown names pass through unchanged.
func CanonicalMinistry(name string) string {
	if canonical, ok := master.Variants[name]; ok {
		return canonical
	}
	return name
}

// MinistryOrder returns the cabinet ordering (建制順) of a ministry, or 0
// when the name is not in the master.
func MinistryOrder(name string) int {
	name = CanonicalMinistry(name)
	for _, m := range master.Ministries {
		if m.Name == name {
			return m.ID
		}
	}
	return 0
}
