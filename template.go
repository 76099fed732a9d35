package ho

import (
	"fmt"
	"strings"
)

// pathToken is one piece of the path portion of a template: either a
// literal run or a single placeholder (param != "").
type pathToken struct {
	literal string
	param   string
}

// queryPair is one key=value entry of the query portion. param is the
// placeholder name, or "" for a fixed literal pair.
type queryPair struct {
	key   string
	value string
	param string
}

// parsedTemplate is the tokenized form of a URL template plus the
// parameters derived from its placeholders, in order of appearance.
type parsedTemplate struct {
	raw    string
	path   []pathToken
	query  []queryPair
	params []ParameterSpec
}

// parseTemplate tokenizes a URL template. Placeholders take the form
// {name} or {name:default}; a default makes the parameter optional. Names
// must be unique across the whole template.
func parseTemplate(tmpl string) (*parsedTemplate, error) {
	pt := &parsedTemplate{raw: tmpl}
	seen := make(map[string]bool)

	pathPart, queryPart, hasQuery := strings.Cut(tmpl, "?")

	if err := pt.parsePath(pathPart, seen); err != nil {
		return nil, err
	}
	if hasQuery {
		if err := pt.parseQuery(queryPart, seen); err != nil {
			return nil, err
		}
	}
	return pt, nil
}

func (pt *parsedTemplate) parsePath(s string, seen map[string]bool) error {
	for len(s) > 0 {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			if strings.IndexByte(s, '}') >= 0 {
				return &TemplateParseError{Template: pt.raw, Reason: "unbalanced '}' in path"}
			}
			pt.path = append(pt.path, pathToken{literal: s})
			break
		}
		if open > 0 {
			lit := s[:open]
			if strings.IndexByte(lit, '}') >= 0 {
				return &TemplateParseError{Template: pt.raw, Reason: "unbalanced '}' in path"}
			}
			pt.path = append(pt.path, pathToken{literal: lit})
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			return &TemplateParseError{Template: pt.raw, Reason: "unbalanced '{' in path"}
		}
		name, def, hasDefault := splitPlaceholder(s[open+1 : open+end])
		spec, err := pt.addParam(seen, name, LocationPath, def, hasDefault)
		if err != nil {
			return err
		}
		pt.path = append(pt.path, pathToken{param: spec.Name})
		s = s[open+end+1:]
	}
	return nil
}

func (pt *parsedTemplate) parseQuery(s string, seen map[string]bool) error {
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if key == "" || strings.ContainsAny(key, "{}") {
			return &TemplateParseError{Template: pt.raw, Reason: fmt.Sprintf("invalid query key in %q", pair)}
		}
		if !strings.ContainsAny(value, "{}") {
			pt.query = append(pt.query, queryPair{key: key, value: value})
			continue
		}
		if len(value) < 2 || value[0] != '{' || value[len(value)-1] != '}' ||
			strings.ContainsAny(value[1:len(value)-1], "{}") {
			return &TemplateParseError{Template: pt.raw, Reason: fmt.Sprintf("malformed placeholder %q", value)}
		}
		name, def, hasDefault := splitPlaceholder(value[1 : len(value)-1])
		spec, err := pt.addParam(seen, name, LocationQuery, def, hasDefault)
		if err != nil {
			return err
		}
		pt.params[len(pt.params)-1].Key = key
		pt.query = append(pt.query, queryPair{key: key, param: spec.Name})
	}
	return nil
}

// addParam validates a placeholder name and appends its ParameterSpec.
// The parser infers TypeAny; declared types are applied later from
// compile options or document entries.
func (pt *parsedTemplate) addParam(seen map[string]bool, name string, loc Location, def string, hasDefault bool) (ParameterSpec, error) {
	if name == "" {
		return ParameterSpec{}, &TemplateParseError{Template: pt.raw, Reason: "empty placeholder name"}
	}
	if !validName(name) {
		return ParameterSpec{}, &TemplateParseError{Template: pt.raw, Reason: fmt.Sprintf("invalid placeholder name %q", name)}
	}
	if seen[name] {
		return ParameterSpec{}, &TemplateParseError{Template: pt.raw, Reason: fmt.Sprintf("duplicate placeholder %q", name)}
	}
	seen[name] = true

	spec := ParameterSpec{
		Name:     name,
		Key:      name,
		Location: loc,
		Type:     TypeAny,
		Required: !hasDefault,
	}
	if hasDefault {
		spec.Default = def
	}
	pt.params = append(pt.params, spec)
	return spec, nil
}

// splitPlaceholder separates "name" or "name:default" placeholder bodies.
// The default is kept as a raw string; coercion happens at compile time.
func splitPlaceholder(body string) (name, def string, hasDefault bool) {
	name, def, hasDefault = strings.Cut(body, ":")
	return name, def, hasDefault
}

// validName reports whether s is a legal parameter name: a letter or
// underscore followed by letters, digits, or underscores.
func validName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}
