package screener

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ResolveProfiles merges configured overrides onto the built-in profiles.
// Each override starts from the built-in named by its "base" key (or the
// built-in of the same name, or "default") and only replaces the keys it sets.
func ResolveProfiles(overrides map[string]map[string]interface{}) (map[string]Profile, error) {
	builtins := Profiles()
	profiles := Profiles()

	for name, raw := range overrides {
		baseName, _ := raw["base"].(string)
		if baseName == "" {
			baseName = name
		}
		base, ok := builtins[baseName]
		if !ok {
			base = DefaultProfile()
		}

		fields := make(map[string]interface{}, len(raw))
		for k, v := range raw {
			if k != "base" {
				fields[k] = v
			}
		}

		p := base
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &p,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(fields); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		p.Name = name

		if err := p.Validate(); err != nil {
			return nil, err
		}
		profiles[name] = p
	}
	return profiles, nil
}
