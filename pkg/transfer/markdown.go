package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// Frontmatter is the YAML header of a Markdown template file.
type Frontmatter struct {
	Name       string     `yaml:"name"`
	Category   string     `yaml:"category"`
	Subject    string     `yaml:"subject"`
	To         Recipients `yaml:"to"`
	CC         Recipients `yaml:"cc"`
	BCC        Recipients `yaml:"bcc"`
	InsertMode string     `yaml:"insertMode"`
	Identities []string   `yaml:"identities"`
}

// Recipients accepts either a YAML list or a comma-separated string.
type Recipients []string

func (r *Recipients) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*r = templates.ParseRecipients(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*r = list
		return nil
	default:
		return fmt.Errorf("recipients: unexpected YAML node kind %d", node.Kind)
	}
}

var delimiter = []byte("---")

// ParseFrontmatter splits content into its YAML header and Markdown body.
// Content without a leading "---" line has an empty header.
func ParseFrontmatter(content []byte) (Frontmatter, []byte, error) {
	var fm Frontmatter
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(content, delimiter) {
		return fm, content, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), " \t")
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	if !bytes.HasPrefix(rest, []byte("\n")) {
		return fm, nil, fmt.Errorf("%w: opening delimiter must be on its own line", ErrInvalidFrontmatter)
	}
	rest = rest[1:]

	end := bytes.Index(rest, append([]byte("\n"), delimiter...))
	var header []byte
	switch {
	case bytes.HasPrefix(rest, delimiter):
		header, rest = nil, rest[len(delimiter):]
	case end >= 0:
		header, rest = rest[:end], rest[end+1+len(delimiter):]
	default:
		return fm, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	rest = bytes.TrimPrefix(rest, []byte("\r"))
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &fm); err != nil {
			return fm, nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}
	return fm, rest, nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// TemplateFromMarkdown builds a template from a Markdown file. fallbackName is used
// when the header has no name.
func TemplateFromMarkdown(content []byte, fallbackName string) (templates.Template, error) {
	fm, body, err := ParseFrontmatter(content)
	if err != nil {
		return templates.Template{}, err
	}

	var html bytes.Buffer
	if err := markdown.Convert(body, &html); err != nil {
		return templates.Template{}, fmt.Errorf("transfer: render markdown: %w", err)
	}

	name := strings.TrimSpace(fm.Name)
	if name == "" {
		name = fallbackName
	}
	return templates.Template{
		Name:       name,
		Category:   fm.Category,
		Subject:    fm.Subject,
		Body:       strings.TrimSpace(html.String()),
		To:         fm.To,
		CC:         fm.CC,
		BCC:        fm.BCC,
		InsertMode: templates.InsertMode(strings.ToLower(strings.TrimSpace(fm.InsertMode))),
		Identities: fm.Identities,
	}, nil
}

// ImportMarkdown saves every *.md file under fsys as a new template, in lexical
// path order. Files that fail to parse or save are reported and skipped.
func ImportMarkdown(ctx context.Context, store Saver, fsys fs.FS, log *slog.Logger) (*Report, error) {
	if log == nil {
		log = logger.NewNope()
	}
	report := &Report{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".md") {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(path.Base(p), path.Ext(p))
		t, err := TemplateFromMarkdown(content, base)
		if err != nil {
			log.WarnContext(ctx, "markdown template skipped", slog.String("path", p), slog.String("error", err.Error()))
			report.Failed = append(report.Failed, p)
			return nil
		}
		if _, err := store.Save(ctx, t); err != nil {
			log.WarnContext(ctx, "markdown template import failed", slog.String("path", p), slog.String("error", err.Error()))
			report.Failed = append(report.Failed, p)
			return nil
		}
		report.Imported++
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("transfer: walk markdown templates: %w", err)
	}
	return report, nil
}
