// Package format renders digest results through user-supplied templates.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	TMPL_HASH = "hash"
	TMPL_NAME = "name"
	TMPL_SIZE = "size"
)

// DefaultTemplate matches the md5sum(1) line layout.
const DefaultTemplate = "{{" + TMPL_HASH + "}}  {{" + TMPL_NAME + "}}"

// Line is one rendered result.
type Line struct {
	Hash string
	Name string
	Size int64
}

// Template is a parsed output template.
type Template struct {
	t *fasttemplate.Template
}

// New parses tmpl and rejects unknown tags.
func New(tmpl string) (*Template, error) {
	t, err := fasttemplate.NewTemplate(tmpl, "{{", "}}")
	if err != nil {
		return nil, err
	}

	_, err = t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		switch strings.TrimSpace(tag) {
		case TMPL_HASH, TMPL_NAME, TMPL_SIZE:
			return 0, nil
		default:
			return 0, fmt.Errorf("unknown template tag %q", tag)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Template{t: t}, nil
}

// Render substitutes the line fields into the template.
func (t *Template) Render(l Line) string {
	return t.t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		switch strings.TrimSpace(tag) {
		case TMPL_HASH:
			return w.Write([]byte(l.Hash))
		case TMPL_NAME:
			return w.Write([]byte(l.Name))
		case TMPL_SIZE:
			return w.Write([]byte(strconv.FormatInt(l.Size, 10)))
		}
		return 0, nil
	})
}
