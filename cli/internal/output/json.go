package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter outputs in JSON format
type JSONFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter creates a new JSON formatter writing to out
func NewJSONFormatter(out io.Writer) *JSONFormatter {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return &JSONFormatter{
		encoder: enc,
	}
}

// FormatServerInfo outputs connection details in JSON format
func (f *JSONFormatter) FormatServerInfo(info *ServerInfo) error {
	return f.encoder.Encode(info)
}

// FormatProbeResult outputs a probe result in JSON format
func (f *JSONFormatter) FormatProbeResult(result *ProbeResult) error {
	return f.encoder.Encode(result)
}
