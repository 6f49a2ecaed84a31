// Package i18n provides the localization catalogs used for setting labels,
// hints and menu titles. Catalogs are nested JSON documents whose keys are
// flattened with dots, e.g. DG.Settings.Saved.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

//go:embed lang/*.json
var embeddedCatalogs embed.FS

// ErrNoCatalog is returned when a directory holds no catalog at all.
var ErrNoCatalog = errors.New("no language catalog found")

// Catalog resolves localization keys for one language. Keys missing from the
// matched language fall back to English, then to the key itself.
type Catalog struct {
	tag     language.Tag
	entries map[string]string
}

// New loads the embedded catalogs and picks the best match for locale.
func New(locale string) (*Catalog, error) {
	return Load(embeddedCatalogs, "lang", locale)
}

// Load reads every <tag>.json file in dir and picks the best match for locale.
func Load(fsys fs.FS, dir, locale string) (*Catalog, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "list catalogs")
	}

	if len(files) == 0 {
		return nil, errors.Wrapf(ErrNoCatalog, "in %s", dir)
	}

	// English first so it is the matcher's fallback
	sort.SliceStable(files, func(i, j int) bool {
		return tagName(files[i]) == "en" && tagName(files[j]) != "en"
	})

	tags := make([]language.Tag, 0, len(files))
	catalogs := make([]map[string]string, 0, len(files))

	for _, file := range files {
		tag, errParse := language.Parse(tagName(file))
		if errParse != nil {
			return nil, errors.Wrapf(errParse, "catalog %s", file)
		}

		entries, errRead := readCatalog(fsys, file)
		if errRead != nil {
			return nil, errRead
		}

		tags = append(tags, tag)
		catalogs = append(catalogs, entries)
	}

	_, idx := language.MatchStrings(language.NewMatcher(tags), locale)

	c := &Catalog{tag: tags[idx], entries: make(map[string]string)}

	if tags[0] == language.English {
		for k, v := range catalogs[0] {
			c.entries[k] = v
		}
	}

	for k, v := range catalogs[idx] {
		c.entries[k] = v
	}

	return c, nil
}

// Localize implements settings.Localizer.
func (c *Catalog) Localize(key string) string {
	if v, ok := c.entries[key]; ok {
		return v
	}

	return key
}

// Tag returns the language the catalog was matched to.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

func tagName(file string) string {
	return strings.TrimSuffix(path.Base(file), path.Ext(file))
}

func readCatalog(fsys fs.FS, file string) (map[string]string, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", file)
	}

	var doc map[string]any
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "decode catalog %s", file)
	}

	entries := make(map[string]string)
	flatten("", doc, entries)

	return entries, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
