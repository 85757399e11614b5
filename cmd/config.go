package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the structure of the --config YAML file.
// Every key mirrors a flag; pointers distinguish "absent" from an explicit zero.
type FileConfig struct {
	CacheSize      *uint64   `yaml:"cache_size"`
	BlockSize      *uint64   `yaml:"block_size"`
	TraceFormat    *string   `yaml:"trace_format"`
	Policies       []string  `yaml:"policies"`
	MaxLines       *int64    `yaml:"max_lines"`
	ReportInterval *int64    `yaml:"report_interval"`
	Workers        *int      `yaml:"workers"`
	Results        *string   `yaml:"results"`
	ExactEndBlock  *bool     `yaml:"exact_end_block"`
	Ratios         []float64 `yaml:"ratios"`
	DeviceSize     *uint64   `yaml:"device_size"`
}

// loadFileConfig parses a config file with strict field checking, so typos are errors.
func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var fc FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil {
		return nil, fmt.Errorf("parsing config YAML %s: %w", path, err)
	}
	return &fc, nil
}

// applyTo copies file values into the flag variables whose flag was not set on
// the command line. changed reports whether a flag was set explicitly.
func (fc *FileConfig) applyTo(changed func(name string) bool) {
	if fc.CacheSize != nil && !changed("cache-size") {
		cacheSize = *fc.CacheSize
	}
	if fc.BlockSize != nil && !changed("block-size") {
		blockSize = *fc.BlockSize
	}
	if fc.TraceFormat != nil && !changed("trace-format") {
		traceFormat = *fc.TraceFormat
	}
	if len(fc.Policies) > 0 && !changed("policy") {
		policies = fc.Policies
	}
	if fc.MaxLines != nil && !changed("max-lines") {
		maxLines = *fc.MaxLines
	}
	if fc.ReportInterval != nil && !changed("report-interval") {
		reportInterval = *fc.ReportInterval
	}
	if fc.Workers != nil && !changed("workers") {
		workers = *fc.Workers
	}
	if fc.Results != nil && !changed("results") {
		resultsPath = *fc.Results
	}
	if fc.ExactEndBlock != nil && !changed("exact-end-block") {
		exactEndBlock = *fc.ExactEndBlock
	}
	if len(fc.Ratios) > 0 && !changed("ratios") {
		ratios = fc.Ratios
	}
	if fc.DeviceSize != nil && !changed("device-size") {
		deviceSize = *fc.DeviceSize
	}
}

// hasCacheSize reports whether the file provided a cache size.
func (fc *FileConfig) hasCacheSize() bool {
	return fc != nil && fc.CacheSize != nil
}
