package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

// LoadLayoutProfile reads marker overrides from a YAML file. An empty path
// yields the built-in profile; keys missing from the file keep their
// defaults.
func LoadLayoutProfile(path string) (domain.LayoutProfile, error) {
	if path == "" {
		return domain.DefaultLayoutProfile(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.LayoutProfile{}, fmt.Errorf("open layout profile: %w", err)
	}
	defer f.Close()

	var profile domain.LayoutProfile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil && !errors.Is(err, io.EOF) {
		return domain.LayoutProfile{}, domain.WrapError(domain.ErrInvalidInput, "decode layout profile "+path, err)
	}
	return profile.WithDefaults(), nil
}
