package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Models answer "return ONLY valid JSON" with markdown fences, chatty
// preambles, or slightly broken JSON often enough that the callers all
// go through these helpers.

// ExtractJSONArray cuts the outermost [...] span out of raw and returns
// it, or raw unchanged when no span is found.
func ExtractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

// ExtractJSONObject cuts the outermost {...} span out of raw and
// returns it, or raw unchanged when no span is found.
func ExtractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

// DecodeArrayWithRepair unmarshals a JSON array out of raw into v.
// On a decode failure it asks the model to fix its own output, up to
// maxRetries round-trips, before giving up.
func DecodeArrayWithRepair(ctx context.Context, ai Completer, raw string, v any, example string, maxRetries int) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := json.Unmarshal([]byte(ExtractJSONArray(raw)), v); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == maxRetries {
			break
		}

		fixed, err := ai.Complete(ctx, repairPrompt(raw, example), 0)
		if err != nil {
			return fmt.Errorf("JSON repair call failed: %w", err)
		}
		raw = fixed
	}
	return fmt.Errorf("could not parse JSON after %d repairs: %w", maxRetries, lastErr)
}

func repairPrompt(raw, example string) string {
	return fmt.Sprintf(`Fix this invalid JSON. Return ONLY valid JSON array.

Original:
%s

Correct example:
%s
`, raw, example)
}
