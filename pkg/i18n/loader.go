package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog maps a language tag to flattened translation keys.
type Catalog map[string]map[string]string

// ParseYAML parses a translation file with one top-level map per language.
func ParseYAML(content []byte) (Catalog, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}

	c := make(Catalog, len(raw))
	for lang, v := range raw {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
		entries, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidYAML, lang, v)
		}
		flat := make(map[string]string)
		flatten("", entries, flat)
		c.merge(tag.String(), flat)
	}
	return c, nil
}

// LoadFS reads every .yaml and .yml file under dir in fsys.
// Later files override keys set by earlier ones.
func LoadFS(fsys fs.FS, dir string) (Catalog, error) {
	c := Catalog{}
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".yaml", ".yml":
		default:
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		parsed, err := ParseYAML(content)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		for lang, entries := range parsed {
			c.merge(lang, entries)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidYAML) || errors.Is(err, ErrInvalidLanguage) {
			return nil, err
		}
		return nil, errors.Join(ErrReadTranslations, err)
	}
	if len(c) == 0 {
		return nil, ErrNoTranslations
	}
	return c, nil
}

func (c Catalog) merge(lang string, entries map[string]string) {
	if c[lang] == nil {
		c[lang] = make(map[string]string, len(entries))
	}
	maps.Copy(c[lang], entries)
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
