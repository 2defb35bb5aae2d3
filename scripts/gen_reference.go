package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

type constValue struct {
	Name  string
	Value string
}

type structField struct {
	Name  string
	Type  string
	Tag   string
	Notes string
}

func main() {
	var configOut string
	var eventsOut string
	flag.StringVar(&configOut, "config-out", "docs/reference/config-schema.md", "output markdown path for the client config schema")
	flag.StringVar(&eventsOut, "events-out", "docs/reference/event-fields.md", "output markdown path for observer event fields")
	flag.Parse()

	root, err := os.Getwd()
	if err != nil {
		fail(err)
	}

	if err := generateConfigSchema(root, configOut); err != nil {
		fail(err)
	}
	if err := generateEventFields(root, eventsOut); err != nil {
		fail(err)
	}
}

func generateConfigSchema(root, outPath string) error {
	structs, err := collectStructFields(filepath.Join(root, "integrations", "http", "config.go"), "yaml", []string{"Config"})
	if err != nil {
		return err
	}
	classifiers, err := collectPrefixedConsts(filepath.Join(root, "classify", "registry.go"), "Classifier")
	if err != nil {
		return err
	}
	policies, err := collectCaseStrings(filepath.Join(root, "response", "merge.go"), "ParseMergePolicy")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("<!-- Generated by scripts/gen_reference.go; do not edit by hand. -->\n")
	buf.WriteString("# Client config schema\n\n")
	buf.WriteString("Generated from: `integrations/http/config.go`, `classify/registry.go`, `response/merge.go`.\n\n")
	buf.WriteString("`${VAR}` references are expanded from the environment before parsing. Unknown keys are rejected.\n\n")
	writeStruct(&buf, "http.Config", "YAML", structs["Config"])

	buf.WriteString("## Built-in classifiers\n\n")
	for _, c := range classifiers {
		buf.WriteString("- `" + c.Value + "` (`classify." + c.Name + "`)\n")
	}
	buf.WriteString("\n## Merge policies\n\n")
	for _, p := range policies {
		if p == "" {
			continue
		}
		buf.WriteString("- `" + p + "`\n")
	}
	buf.WriteString("\nAn empty `merge_policy` means `ignore_failure`.\n")

	return writeFile(outPath, buf.Bytes())
}

func generateEventFields(root, outPath string) error {
	typesPath := filepath.Join(root, "observe", "types.go")
	structs, err := collectStructFields(typesPath, "", []string{"Event"})
	if err != nil {
		return err
	}
	reasons, err := collectPrefixedConsts(typesPath, "Drop")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("<!-- Generated by scripts/gen_reference.go; do not edit by hand. -->\n")
	buf.WriteString("# Observer event fields\n\n")
	buf.WriteString("Generated from: `observe/types.go`.\n\n")
	buf.WriteString("These fields and drop reasons are part of the telemetry contract. Changes are breaking.\n\n")
	writeStruct(&buf, "observe.Event", "", structs["Event"])

	buf.WriteString("## Drop reasons\n\n")
	buf.WriteString("These values are passed to `observe.Observer.OnDropped`.\n\n")
	for _, r := range reasons {
		buf.WriteString("- `" + r.Value + "` (`observe." + r.Name + "`)\n")
	}

	return writeFile(outPath, buf.Bytes())
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

// collectPrefixedConsts returns the string constants in path whose names start with prefix.
func collectPrefixedConsts(path, prefix string) ([]constValue, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}
	var values []constValue
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, name := range vs.Names {
				if !strings.HasPrefix(name.Name, prefix) || len(vs.Values) <= i {
					continue
				}
				val, ok := stringLiteral(vs.Values[i])
				if !ok {
					continue
				}
				values = append(values, constValue{Name: name.Name, Value: val})
			}
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Value < values[j].Value })
	return values, nil
}

// collectCaseStrings returns the string literals of every case clause in funcName.
func collectCaseStrings(path, funcName string) ([]string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}
	fn := funcDeclByName(f, funcName)
	if fn == nil || fn.Body == nil {
		return nil, fmt.Errorf("%s: func %s not found", path, funcName)
	}
	seen := make(map[string]struct{})
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		cc, ok := n.(*ast.CaseClause)
		if !ok {
			return true
		}
		for _, expr := range cc.List {
			if s, ok := stringLiteral(expr); ok {
				seen[s] = struct{}{}
			}
		}
		return true
	})
	return setToSorted(seen), nil
}

func collectStructFields(path, tagKey string, names []string) (map[string][]structField, error) {
	want := make(map[string]struct{})
	for _, name := range names {
		want[name] = struct{}{}
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]structField)
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if _, ok := want[ts.Name.Name]; !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			fields := make([]structField, 0, len(st.Fields.List))
			for _, field := range st.Fields.List {
				typeStr := exprString(field.Type)
				notes := joinComments(field.Doc, field.Comment)
				tagVal := ""
				if tagKey != "" && field.Tag != nil {
					if tag, err := strconv.Unquote(field.Tag.Value); err == nil {
						tagVal = strings.Split(reflect.StructTag(tag).Get(tagKey), ",")[0]
					}
				}
				for _, name := range field.Names {
					fields = append(fields, structField{Name: name.Name, Type: typeStr, Tag: tagVal, Notes: notes})
				}
			}
			out[ts.Name.Name] = fields
		}
	}
	return out, nil
}

func funcDeclByName(f *ast.File, name string) *ast.FuncDecl {
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if ok && fn.Recv == nil && fn.Name.Name == name {
			return fn
		}
	}
	return nil
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	val, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return val, true
}

func exprString(expr ast.Expr) string {
	var buf bytes.Buffer
	_ = printer.Fprint(&buf, token.NewFileSet(), expr)
	return buf.String()
}

func joinComments(groups ...*ast.CommentGroup) string {
	var parts []string
	for _, g := range groups {
		if g == nil {
			continue
		}
		text := strings.TrimSpace(g.Text())
		if text != "" {
			parts = append(parts, strings.ReplaceAll(text, "\n", " "))
		}
	}
	return strings.Join(parts, " ")
}

// writeStruct renders fields as a table. tagLabel names the tag column; empty omits it.
func writeStruct(buf *bytes.Buffer, name, tagLabel string, fields []structField) {
	if len(fields) == 0 {
		return
	}
	buf.WriteString("## " + name + "\n\n")
	if tagLabel != "" {
		buf.WriteString("| Field | Type | " + tagLabel + " | Notes |\n")
		buf.WriteString("|---|---|---|---|\n")
	} else {
		buf.WriteString("| Field | Type | Notes |\n")
		buf.WriteString("|---|---|---|\n")
	}
	for _, field := range fields {
		note := orDash(field.Notes)
		row := "| `" + field.Name + "` | `" + orDash(field.Type) + "` | "
		if tagLabel != "" {
			row += "`" + orDash(field.Tag) + "` | "
		}
		buf.WriteString(row + escapePipes(note) + " |\n")
	}
	buf.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func setToSorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
