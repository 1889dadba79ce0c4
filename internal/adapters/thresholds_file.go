package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rhcos-prune/internal/types"
)

// LoadSupportThresholds reads per-architecture supported-since build
// ordinals from a YAML file:
//
//	arches:
//	  x86_64: 410842022012600000
//	  aarch64: 412862022100300000
//
// An empty path yields empty thresholds, meaning no builds are skipped.
func LoadSupportThresholds(path string) (types.SupportThresholds, error) {
	if strings.TrimSpace(path) == "" {
		return types.SupportThresholds{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SupportThresholds{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to read thresholds file %s", path)).
			WithCause(err)
	}
	thresholds := types.SupportThresholds{}
	if err := yaml.Unmarshal(data, &thresholds); err != nil {
		return types.SupportThresholds{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed thresholds file %s", path)).
			WithCause(err)
	}
	return thresholds, nil
}
