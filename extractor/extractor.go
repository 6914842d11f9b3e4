// Package extractor turns raw document text into a structured field
// record. The live implementation calls an external model API; a
// deterministic stub stands in when no API key is configured. The
// implementation is selected once at process start, never per call.
package extractor

import (
	"errors"
	"log"
	"seva/config"
	"seva/engine"
)

// ErrUnreadable signals that the uploaded file held no usable text.
var ErrUnreadable = errors.New("document text is unreadable")

// Default is the process-wide extractor, set by Init.
var Default engine.Extractor

// Init selects the extractor implementation from configuration.
func Init() {
	if config.AppConfig.ExtractorApiKey == "" {
		log.Println("Extractor: using deterministic stub (no API key configured).")
		Default = &StubExtractor{}
		return
	}
	Default = newLLMExtractor(config.AppConfig.ExtractorApiUrl, config.AppConfig.ExtractorApiKey)
}
