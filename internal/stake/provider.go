package stake

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider reports the total staked weight of the chain. A result of zero
// or less means no reference is available and the market falls back to
// each resource's assumed stake weight.
type Provider interface {
	TotalWeight() (int64, error)
	Name() string
}

// Static returns a fixed total weight.
type Static struct {
	Weight int64
}

func (s Static) TotalWeight() (int64, error) { return s.Weight, nil }
func (s Static) Name() string                { return "static" }

// File reads the total weight from a file on every call, so an external
// process can keep it current. The file holds either a bare integer or a
// YAML document with a total_weight key.
type File struct {
	Path string
}

type fileDoc struct {
	TotalWeight int64 `yaml:"total_weight"`
}

func (f File) Name() string { return "file:" + f.Path }

func (f File) TotalWeight() (int64, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read stake file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse stake file: %w", err)
	}
	return doc.TotalWeight, nil
}
