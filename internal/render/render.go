package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Lumos-Labs-HQ/mockforge/internal/model"
)

// Renderer turns table descriptions into Go source files that rebuild
// the same generation contract. It consumes only the plain descriptive
// data the model exposes.
type Renderer struct {
	outDir  string
	pkgName string
	tmpl    *template.Template
}

func New(outDir string) (*Renderer, error) {
	if outDir == "" {
		return nil, fmt.Errorf("output directory must not be empty")
	}

	tmpl, err := template.New("model").Funcs(template.FuncMap{
		"camel":       toCamel,
		"constraints": constraintsLiteral,
		"quoteAll":    quoteAll,
	}).Parse(modelTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model template: %w", err)
	}

	return &Renderer{
		outDir:  outDir,
		pkgName: sanitizePackage(filepath.Base(outDir)),
		tmpl:    tmpl,
	}, nil
}

// RenderTable writes one <table>_model.go file and returns its path.
func (r *Renderer) RenderTable(desc model.TableDescription) (string, error) {
	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf strings.Builder
	data := struct {
		Package string
		Table   model.TableDescription
	}{Package: r.pkgName, Table: desc}

	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render model for table %q: %w", desc.Name, err)
	}

	path := filepath.Join(r.outDir, desc.Name+"_model.go")
	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write model file: %w", err)
	}
	return path, nil
}

const modelTemplate = `// Code generated by mockforge; DO NOT EDIT.

package {{ .Package }}

import (
	"github.com/Lumos-Labs-HQ/mockforge/internal/generator"
	"github.com/Lumos-Labs-HQ/mockforge/internal/model"
)

// New{{ camel .Table.Name }}Model rebuilds the generation contract for
// the "{{ .Table.Name }}" table.
func New{{ camel .Table.Name }}Model() (*model.TableModel, error) {
	m := model.NewTableModel("{{ .Table.Name }}")

	setupColumns := func(tm *model.TableModel) error {
{{- range .Table.Columns }}
		{
			col, err := model.NewColumn("{{ .Name }}", generator.Kind("{{ .Kind }}"), {{ .Nullable }}, {{ constraints . }})
			if err != nil {
				return err
			}
{{- if gt .NullRate 0.0 }}
			if err := col.SetNullRate({{ .NullRate }}); err != nil {
				return err
			}
{{- end }}
			if err := tm.AddColumn(col); err != nil {
				return err
			}
		}
{{- end }}
		return nil
	}

	setupRelations := func(tm *model.TableModel) error {
{{- range .Table.Relations }}
		{
			cfg, err := model.NewRelationConfig({{ .MinRelated }}, {{ .MaxRelated }}, {{ .PoolSize }})
			if err != nil {
				return err
			}
{{- if eq (printf "%s" .Type) "many_to_many" }}
			rel, err := model.NewManyToMany("{{ $.Table.Name }}", "{{ .FromColumn }}", "{{ .ToTable }}", "{{ .ToColumn }}", "{{ .JunctionTable }}", cfg)
{{- else }}
			rel, err := model.NewOneToMany("{{ $.Table.Name }}", "{{ .FromColumn }}", "{{ .ToTable }}", "{{ .ToColumn }}", cfg)
{{- end }}
			if err != nil {
				return err
			}
			if err := tm.AddRelation(rel); err != nil {
				return err
			}
		}
{{- end }}
		return nil
	}

	if err := m.Configure(setupColumns, setupRelations); err != nil {
		return nil, err
	}
	return m, nil
}
`

// constraintsLiteral formats the non-zero constraint fields as a Go
// composite literal. Time bounds are left to the generator defaults;
// rendered models re-derive them at build time.
func constraintsLiteral(c model.ColumnDescription) string {
	var parts []string
	if c.MinInt != 0 {
		parts = append(parts, fmt.Sprintf("MinInt: %d", c.MinInt))
	}
	if c.MaxInt != 0 {
		parts = append(parts, fmt.Sprintf("MaxInt: %d", c.MaxInt))
	}
	if c.MinFloat != 0 {
		parts = append(parts, fmt.Sprintf("MinFloat: %g", c.MinFloat))
	}
	if c.MaxFloat != 0 {
		parts = append(parts, fmt.Sprintf("MaxFloat: %g", c.MaxFloat))
	}
	if c.MaxLength != 0 {
		parts = append(parts, fmt.Sprintf("MaxLength: %d", c.MaxLength))
	}
	if len(c.Choices) > 0 {
		parts = append(parts, fmt.Sprintf("Choices: []string{%s}", quoteAll(c.Choices)))
	}
	if len(parts) == 0 {
		return "generator.Constraints{}"
	}
	return "generator.Constraints{" + strings.Join(parts, ", ") + "}"
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

// toCamel converts snake_case table names to CamelCase identifiers.
func toCamel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func sanitizePackage(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, "-", ""))
	name = strings.ReplaceAll(name, "_", "")
	if name == "" || name == "." {
		return "models"
	}
	return name
}
