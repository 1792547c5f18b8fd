// Package envutil reads typed values from environment variables.
// The typed readers treat a variable set to "" as unset; String does not.
package envutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"
)

func get(key string) Reader[string] {
	val, ok := os.LookupEnv(key)

	return Reader[string]{key: key, present: ok, value: val}
}

// NonEmpty treats a variable that is set to "" as unset.
func NonEmpty(r Reader[string]) Reader[string] {
	if r.present && r.err == nil && r.value == "" {
		return Reader[string]{key: r.key}
	}

	return r
}

// String reads a raw string.
func String(key string) Reader[string] {
	return get(key)
}

// Bool reads a boolean in any form strconv.ParseBool accepts.
func Bool(key string) Reader[bool] {
	return Map(NonEmpty(get(key)), strconv.ParseBool)
}

// Duration reads a time.Duration such as "2s".
func Duration(key string) Reader[time.Duration] {
	return Map(NonEmpty(get(key)), time.ParseDuration)
}

// SlogLevel reads a level name such as "debug" or "WARN".
func SlogLevel(key string) Reader[slog.Level] {
	return Map(NonEmpty(get(key)), func(s string) (slog.Level, error) {
		var level slog.Level

		err := level.UnmarshalText([]byte(s))

		return level, err
	})
}

// URL reads an absolute URL and returns it unchanged once validated.
func URL(key string) Reader[string] {
	return Map(NonEmpty(get(key)), func(s string) (string, error) {
		u, err := url.Parse(s)
		if err != nil {
			return s, err
		}

		if u.Scheme == "" || u.Host == "" {
			return s, fmt.Errorf("%q is not an absolute URL", s)
		}

		return s, nil
	})
}
