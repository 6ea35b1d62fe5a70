package config

import "io/fs"

// ExtractorConfig defines defaults for extraction runs. Command-line flags
// take precedence over every field.
type ExtractorConfig struct {
	Hierarchical     bool   `json:"hierarchical,omitempty" yaml:"hierarchical,omitempty"`
	Strict           bool   `json:"strict,omitempty" yaml:"strict,omitempty"`
	Verbose          bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	DecoderBackend   string `json:"decoder_backend,omitempty" yaml:"decoder_backend,omitempty" validate:"omitempty,decoderbackend"`
	OutputSuffix     string `json:"output_suffix,omitempty" yaml:"output_suffix,omitempty" validate:"required,excludesall=/"`
	FilePermissions  uint32 `json:"file_permissions,omitempty" yaml:"file_permissions,omitempty" validate:"min=0,max=511"`
	DirPermissions   uint32 `json:"dir_permissions,omitempty" yaml:"dir_permissions,omitempty" validate:"min=0,max=511"`
	StreamBufferSize int    `json:"stream_buffer_size,omitempty" yaml:"stream_buffer_size,omitempty" validate:"min=0"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		DecoderBackend:   DefaultDecoderBackend,
		OutputSuffix:     DefaultOutputSuffix,
		FilePermissions:  DefaultFilePermissions,
		DirPermissions:   DefaultDirPermissions,
		StreamBufferSize: DefaultStreamBufferSize,
	}
}

// FileMode returns the permission bits for extracted files.
func (c ExtractorConfig) FileMode() fs.FileMode {
	if c.FilePermissions == 0 {
		return DefaultFilePermissions
	}
	return fs.FileMode(c.FilePermissions)
}

// DirMode returns the permission bits for created directories.
func (c ExtractorConfig) DirMode() fs.FileMode {
	if c.DirPermissions == 0 {
		return DefaultDirPermissions
	}
	return fs.FileMode(c.DirPermissions)
}
