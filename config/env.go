// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gogpu/webfont"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "WEBFONT_"

// LoadDotEnv loads the given .env files (".env" when none are given) into
// the process environment. Variables already set are kept; missing files
// are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrConfig, f, err)
		}
	}
	return nil
}

// FromEnv builds a patch from WEBFONT_* variables of environ (as returned
// by os.Environ): WEBFONT_FONT_NAME, WEBFONT_FORMATS (comma separated),
// WEBFONT_START_UNICODE (decimal or 0x hex) and so on.
func FromEnv(environ []string) (webfont.ConfigPatch, error) {
	var p webfont.ConfigPatch
	vars := make(map[string]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			vars[strings.TrimPrefix(k, EnvPrefix)] = v
		}
	}

	var err error
	str := func(key string, dst **string) {
		if v, ok := vars[key]; ok {
			*dst = &v
		}
	}
	boolean := func(key string, dst **bool) {
		v, ok := vars[key]
		if !ok || err != nil {
			return
		}
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			err = fmt.Errorf("%w: %s%s: %w", ErrConfig, EnvPrefix, key, perr)
			return
		}
		*dst = &b
	}
	float := func(key string, dst **float64) {
		v, ok := vars[key]
		if !ok || err != nil {
			return
		}
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			err = fmt.Errorf("%w: %s%s: %w", ErrConfig, EnvPrefix, key, perr)
			return
		}
		*dst = &f
	}
	integer := func(key string, bits int) (int64, bool) {
		v, ok := vars[key]
		if !ok || err != nil {
			return 0, false
		}
		n, perr := strconv.ParseInt(v, 0, bits)
		if perr != nil {
			err = fmt.Errorf("%w: %s%s: %w", ErrConfig, EnvPrefix, key, perr)
			return 0, false
		}
		return n, true
	}
	list := func(key string) webfont.StringList {
		v, ok := vars[key]
		if !ok {
			return nil
		}
		var out webfont.StringList
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	p.Files = list("FILES")
	p.Formats = list("FORMATS")
	str("FONT_NAME", &p.FontName)
	str("FONT_ID", &p.FontID)
	str("FONT_STYLE", &p.FontStyle)
	str("FONT_WEIGHT", &p.FontWeight)
	float("FONT_HEIGHT", &p.FontHeight)
	float("ASCENT", &p.Ascent)
	float("DESCENT", &p.Descent)
	boolean("FIXED_WIDTH", &p.FixedWidth)
	boolean("CENTER_HORIZONTALLY", &p.CenterHorizontally)
	boolean("NORMALIZE", &p.Normalize)
	float("ROUND", &p.Round)
	str("METADATA", &p.Metadata)
	if n, ok := integer("MAX_CONCURRENCY", 32); ok {
		v := int(n)
		p.MaxConcurrency = &v
	}
	boolean("SORT", &p.Sort)
	if n, ok := integer("START_UNICODE", 32); ok {
		v := rune(n)
		p.StartUnicode = &v
	}
	boolean("PREPEND_UNICODE", &p.PrependUnicode)
	str("TEMPLATE", &p.Template)
	str("TEMPLATE_CLASS_NAME", &p.TemplateClassName)
	str("TEMPLATE_FONT_NAME", &p.TemplateFontName)
	str("TEMPLATE_FONT_PATH", &p.TemplateFontPath)
	boolean("ADD_HASH_IN_FONT_URL", &p.AddHashInFontURL)
	boolean("VERIFY", &p.Verify)
	str("INSPECTOR", &p.Inspector)

	ttf := &webfont.TTFOptionsPatch{}
	str("TTF_COPYRIGHT", &ttf.Copyright)
	str("TTF_DESCRIPTION", &ttf.Description)
	str("TTF_URL", &ttf.URL)
	str("TTF_VERSION", &ttf.Version)
	if n, ok := integer("TTF_TS", 64); ok {
		ttf.Timestamp = &n
	}
	if *ttf != (webfont.TTFOptionsPatch{}) {
		p.FormatsOptions = &webfont.FormatsOptionsPatch{TTF: ttf}
	}

	if err != nil {
		return webfont.ConfigPatch{}, err
	}
	return p, nil
}
