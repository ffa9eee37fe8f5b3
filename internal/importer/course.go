package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

// LoadCourseConfig reads a course layout file. YAML and JSON are both accepted.
func LoadCourseConfig(path string) (skins.CourseConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return skins.CourseConfig{}, apperrors.InvalidInput(fmt.Sprintf("failed to open course config %s", path), err).
			WithOperation("LoadCourseConfig")
	}
	defer f.Close()
	return DecodeCourseConfig(f)
}

// DecodeCourseConfig decodes a course layout, rejecting unknown fields
func DecodeCourseConfig(r io.Reader) (skins.CourseConfig, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return skins.CourseConfig{}, apperrors.InvalidInput("failed to read course config", err).WithOperation("DecodeCourseConfig")
	}

	var course skins.CourseConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&course); err != nil {
		return skins.CourseConfig{}, apperrors.ValidationError("malformed course config", err).WithOperation("DecodeCourseConfig")
	}
	if len(course.Holes) == 0 {
		return skins.CourseConfig{}, apperrors.ValidationError("course config has no holes", nil).WithOperation("DecodeCourseConfig")
	}
	return course, nil
}
