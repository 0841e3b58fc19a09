package ingest

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/career-navigator/internal/fields"
	"github.com/spigell/career-navigator/internal/resume"
)

// FirstJSONObject returns the first balanced {...} span in s. Braces inside JSON
// strings are ignored.
func FirstJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	for start >= 0 {
		if end := matchBrace(s, start); end > 0 {
			return s[start : end+1], nil
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", ErrNoJSONObject
}

// matchBrace returns the index of the brace closing the one at open, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	inString, escaped := false, false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// wireSkill accepts both "level" and the "proficiency" key some models emit.
type wireSkill struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Proficiency string `json:"proficiency"`
}

type wireResume struct {
	PersonalInfo resume.PersonalInfo `json:"personal_info"`
	Summary      string              `json:"summary"`
	Education    []resume.Education  `json:"education"`
	Experience   []resume.Experience `json:"experience"`
	Skills       []wireSkill         `json:"skills"`
	Projects     []resume.Project    `json:"projects"`
}

// decodeResume parses model output into a résumé. Field values are coerced
// leniently: bad dates become absent and numbers may arrive as strings.
func decodeResume(span string) (*resume.Resume, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, fmt.Errorf("parse resume json: %w", err)
	}

	var wire wireResume
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			dateHook,
			lenientFloatHook,
			skillHook,
		),
		Result:           &wire,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build resume decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}

	r := &resume.Resume{
		PersonalInfo: wire.PersonalInfo,
		Summary:      wire.Summary,
		Education:    wire.Education,
		Experience:   wire.Experience,
		Projects:     wire.Projects,
		Skills:       make([]resume.Skill, 0, len(wire.Skills)),
	}
	for _, s := range wire.Skills {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		level := s.Level
		if level == "" {
			level = s.Proficiency
		}
		r.Skills = append(r.Skills, resume.Skill{Name: s.Name, Category: s.Category, Level: level})
	}
	r.Normalize()
	return r, nil
}

var dateType = reflect.TypeOf(resume.Date{})

func dateHook(from, to reflect.Type, data any) (any, error) {
	if to != dateType {
		return data, nil
	}
	v, ok := data.(string)
	if !ok {
		return resume.Date{}, nil
	}
	if d := resume.ParseISODate(v); d.Valid() {
		return d, nil
	}
	// "September 2018" resolves to the first of the month.
	return fields.ParseMonthYear(v), nil
}

func lenientFloatHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Float64 {
		return data, nil
	}
	v, ok := data.(string)
	if !ok {
		return data, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0.0, nil
	}
	return f, nil
}

var skillType = reflect.TypeOf(wireSkill{})

// skillHook accepts a bare skill name in place of a skill object.
func skillHook(from, to reflect.Type, data any) (any, error) {
	if to != skillType {
		return data, nil
	}
	if name, ok := data.(string); ok {
		return wireSkill{Name: name}, nil
	}
	return data, nil
}
