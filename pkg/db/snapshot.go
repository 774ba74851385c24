package db

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// EncodeSnapshot renders a snapshot as the YAML document stored by every backend
func EncodeSnapshot(snapshot *model.Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a YAML snapshot document. Rules left out of the document
// fall back to model.DefaultGlobalRules.
func DecodeSnapshot(data []byte) (*model.Snapshot, error) {
	snapshot := model.Snapshot{Rules: model.DefaultGlobalRules()}
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}
