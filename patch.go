// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webfont

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// StringList is a list of strings that also decodes from a single scalar,
// so both `files: icons/*.svg` and `files: [a.svg, b.svg]` are accepted.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = StringList{value.Value}
		return nil
	}
	var s []string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*l = s
	return nil
}

// TTFOptionsPatch overrides TTFOptions field by field.
type TTFOptionsPatch struct {
	Copyright   *string `yaml:"copyright"`
	Description *string `yaml:"description"`
	URL         *string `yaml:"url"`
	Version     *string `yaml:"version"`
	Timestamp   *int64  `yaml:"ts"`
}

// FormatsOptionsPatch overrides FormatsOptions.
type FormatsOptionsPatch struct {
	TTF *TTFOptionsPatch `yaml:"ttf"`
}

// ConfigPatch is a partial Config, as read from a configuration file or
// the command line. Nil fields leave the configuration unchanged.
type ConfigPatch struct {
	Files              StringList           `yaml:"files"`
	FontName           *string              `yaml:"fontName"`
	FontID             *string              `yaml:"fontId"`
	FontStyle          *string              `yaml:"fontStyle"`
	FontWeight         *string              `yaml:"fontWeight"`
	FontHeight         *float64             `yaml:"fontHeight"`
	Ascent             *float64             `yaml:"ascent"`
	Descent            *float64             `yaml:"descent"`
	FixedWidth         *bool                `yaml:"fixedWidth"`
	CenterHorizontally *bool                `yaml:"centerHorizontally"`
	Normalize          *bool                `yaml:"normalize"`
	Round              *float64             `yaml:"round"`
	Metadata           *string              `yaml:"metadata"`
	Formats            StringList           `yaml:"formats"`
	FormatsOptions     *FormatsOptionsPatch `yaml:"formatsOptions"`
	MaxConcurrency     *int                 `yaml:"maxConcurrency"`
	Sort               *bool                `yaml:"sort"`
	StartUnicode       *rune                `yaml:"startUnicode"`
	PrependUnicode     *bool                `yaml:"prependUnicode"`
	Template           *string              `yaml:"template"`
	TemplateClassName  *string              `yaml:"templateClassName"`
	TemplateFontName   *string              `yaml:"templateFontName"`
	TemplateFontPath   *string              `yaml:"templateFontPath"`
	AddHashInFontURL   *bool                `yaml:"addHashInFontUrl"`
	Verify             *bool                `yaml:"verify"`
	Inspector          *string              `yaml:"inspector"`
}

// Apply returns c with every field set in p overridden. Lists replace the
// configured list; format options merge field by field.
func (c Config) Apply(p ConfigPatch) Config {
	c = c.Clone()
	if p.Files != nil {
		c.Files = append([]string(nil), p.Files...)
	}
	if p.Formats != nil {
		c.Formats = make([]Format, 0, len(p.Formats))
		for _, f := range p.Formats {
			c.Formats = append(c.Formats, Format(strings.ToLower(strings.TrimSpace(f))))
		}
	}
	set(&c.FontName, p.FontName)
	set(&c.FontID, p.FontID)
	set(&c.FontStyle, p.FontStyle)
	set(&c.FontWeight, p.FontWeight)
	set(&c.FontHeight, p.FontHeight)
	if p.Ascent != nil {
		a := *p.Ascent
		c.Ascent = &a
	}
	set(&c.Descent, p.Descent)
	set(&c.FixedWidth, p.FixedWidth)
	set(&c.CenterHorizontally, p.CenterHorizontally)
	set(&c.Normalize, p.Normalize)
	set(&c.Round, p.Round)
	set(&c.Metadata, p.Metadata)
	if p.FormatsOptions != nil && p.FormatsOptions.TTF != nil {
		t := p.FormatsOptions.TTF
		set(&c.FormatsOptions.TTF.Copyright, t.Copyright)
		set(&c.FormatsOptions.TTF.Description, t.Description)
		set(&c.FormatsOptions.TTF.URL, t.URL)
		set(&c.FormatsOptions.TTF.Version, t.Version)
		set(&c.FormatsOptions.TTF.Timestamp, t.Timestamp)
	}
	set(&c.MaxConcurrency, p.MaxConcurrency)
	set(&c.Sort, p.Sort)
	set(&c.StartUnicode, p.StartUnicode)
	set(&c.PrependUnicode, p.PrependUnicode)
	set(&c.Template, p.Template)
	set(&c.TemplateClassName, p.TemplateClassName)
	set(&c.TemplateFontName, p.TemplateFontName)
	set(&c.TemplateFontPath, p.TemplateFontPath)
	set(&c.AddHashInFontURL, p.AddHashInFontURL)
	set(&c.Verify, p.Verify)
	set(&c.Inspector, p.Inspector)
	return c
}

// Merge returns a patch with the fields of over taking precedence over p.
func (p ConfigPatch) Merge(over ConfigPatch) ConfigPatch {
	if over.Files != nil {
		p.Files = over.Files
	}
	if over.Formats != nil {
		p.Formats = over.Formats
	}
	if over.FormatsOptions != nil && over.FormatsOptions.TTF != nil {
		var base TTFOptionsPatch
		if p.FormatsOptions != nil && p.FormatsOptions.TTF != nil {
			base = *p.FormatsOptions.TTF
		}
		o := over.FormatsOptions.TTF
		setPtr(&base.Copyright, o.Copyright)
		setPtr(&base.Description, o.Description)
		setPtr(&base.URL, o.URL)
		setPtr(&base.Version, o.Version)
		setPtr(&base.Timestamp, o.Timestamp)
		p.FormatsOptions = &FormatsOptionsPatch{TTF: &base}
	}
	setPtr(&p.FontName, over.FontName)
	setPtr(&p.FontID, over.FontID)
	setPtr(&p.FontStyle, over.FontStyle)
	setPtr(&p.FontWeight, over.FontWeight)
	setPtr(&p.FontHeight, over.FontHeight)
	setPtr(&p.Ascent, over.Ascent)
	setPtr(&p.Descent, over.Descent)
	setPtr(&p.FixedWidth, over.FixedWidth)
	setPtr(&p.CenterHorizontally, over.CenterHorizontally)
	setPtr(&p.Normalize, over.Normalize)
	setPtr(&p.Round, over.Round)
	setPtr(&p.Metadata, over.Metadata)
	setPtr(&p.MaxConcurrency, over.MaxConcurrency)
	setPtr(&p.Sort, over.Sort)
	setPtr(&p.StartUnicode, over.StartUnicode)
	setPtr(&p.PrependUnicode, over.PrependUnicode)
	setPtr(&p.Template, over.Template)
	setPtr(&p.TemplateClassName, over.TemplateClassName)
	setPtr(&p.TemplateFontName, over.TemplateFontName)
	setPtr(&p.TemplateFontPath, over.TemplateFontPath)
	setPtr(&p.AddHashInFontURL, over.AddHashInFontURL)
	setPtr(&p.Verify, over.Verify)
	setPtr(&p.Inspector, over.Inspector)
	return p
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setPtr[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}
