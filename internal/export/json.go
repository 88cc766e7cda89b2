// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders the complete transcript as indented JSON.
// Options do not filter JSON output: the export is a faithful copy of
// the stored transcript, suitable for re-import or scripting.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonTranscript struct {
	Exported time.Time       `json:"exported"`
	Messages []model.Message `json:"messages"`
}

// Export renders the transcript.
func (e *JSONExporter) Export(messages []model.Message) ([]byte, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("transcript has no messages")
	}
	return json.MarshalIndent(jsonTranscript{
		Exported: time.Now().UTC(),
		Messages: messages,
	}, "", "  ")
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
