package validation

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
)

// TSConfig checks a tsconfig.json for the recommended compiler options.
// Comments and trailing commas are tolerated.
func TSConfig(data []byte) Result {
	var r Result
	var cfg struct {
		CompilerOptions map[string]any `json:"compilerOptions"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		repaired, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			r.Errorf("tsconfig.json is not valid JSON: %v", err)
			return r
		}
		if err := json.Unmarshal([]byte(repaired), &cfg); err != nil {
			r.Errorf("tsconfig.json is not valid JSON: %v", err)
			return r
		}
	}
	if cfg.CompilerOptions == nil {
		r.Errorf("tsconfig.json has no compilerOptions")
		return r
	}

	opts := cfg.CompilerOptions
	if strict, _ := opts["strict"].(bool); !strict {
		r.Add(Issue{
			Severity:   SeverityWarning,
			Message:    "strict mode is disabled",
			Suggestion: `set "strict": true`,
		})
	}
	if noEmit, _ := opts["noEmit"].(bool); !noEmit {
		r.Add(Issue{
			Severity:   SeverityInfo,
			Message:    "noEmit is not set; the bundler normally owns emission",
			Suggestion: `set "noEmit": true`,
		})
	}
	if jsx, ok := opts["jsx"].(string); ok && jsx != "react-jsx" && jsx != "preserve" {
		r.Add(Issue{
			Severity:   SeverityWarning,
			Message:    "unexpected jsx mode " + jsx,
			Suggestion: `use "react-jsx" or "preserve"`,
		})
	}
	return r
}
