package loader

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/benn-herrera/jnihgen/model"
)

var optionsDecoder = schema.NewDecoder()

// ParseOverrides turns key=value pairs from --set into a partial options value.
// Keys use the same names as the declaration file's options block.
func ParseOverrides(pairs []string) (*model.GenerateOptions, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := url.Values{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", p)
		}
		values.Set(key, value)
	}

	var opts model.GenerateOptions
	if err := optionsDecoder.Decode(&opts, values); err != nil {
		return nil, fmt.Errorf("decoding --set options: %w", err)
	}
	if err := validateStruct(&opts); err != nil {
		return nil, fmt.Errorf("invalid --set options: %w", err)
	}
	return &opts, nil
}

// ResolveOptions layers the defaults, the declaration file's options block and
// the --set overrides, later layers winning.
func ResolveOptions(fileOpts *model.GenerateOptions, overrides []string) (model.GenerateOptions, error) {
	set, err := ParseOverrides(overrides)
	if err != nil {
		return model.GenerateOptions{}, err
	}
	return model.DefaultOptions().Merge(fileOpts).Merge(set), nil
}
