package config

import (
	"fmt"
	"time"

	json "github.com/json-iterator/go"
)

// Duration is a time.Duration, which is represented in JSON as a Go duration string,
// e.g. "90s" or "1m30s".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("duration must be a string like \"90s\": %w", err)
	}

	parsed, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}
