package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/voidshard/sslcheck/pkg/errors"
	"github.com/voidshard/sslcheck/pkg/structs"
)

// TemplateName is the file a template directory must provide.
const TemplateName = "report.tmpl"

//go:embed templates/report.tmpl
var builtin embed.FS

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"ms":    func(ms int64) string { return fmt.Sprintf("%.1fs", float64(ms)/1000) },
}

// TemplateRenderer renders with text/template. The template is loaded and
// parsed on every Render so a broken template surfaces as a render error.
type TemplateRenderer struct {
	dir string
}

// NewTemplateRenderer reads report.tmpl from dir, or uses the built in
// template if dir is empty.
func NewTemplateRenderer(dir string) *TemplateRenderer {
	return &TemplateRenderer{dir: dir}
}

type templateData struct {
	Host          string
	Result        *structs.Host
	EndpointCount int
	GoodEndpoints []*structs.Endpoint
	BadEndpoints  []*structs.Endpoint
	RawResults    bool
	Results       string
}

func (r *TemplateRenderer) Render(in *Input) (string, error) {
	err := Validate(in.Document)
	if err != nil {
		return "", err
	}

	host := &structs.Host{}
	err = json.Unmarshal(in.Document, host)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidResults, err)
	}

	tmpl, err := r.load()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrReportRender, err)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, in.Document, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidResults, err)
	}

	good, bad := Partition(host.Endpoints)
	data := &templateData{
		Host:          in.Host,
		Result:        host,
		EndpointCount: len(host.Endpoints),
		GoodEndpoints: good,
		BadEndpoints:  bad,
		RawResults:    in.RawResults,
		Results:       indented.String(),
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrReportRender, err)
	}
	return out.String(), nil
}

func (r *TemplateRenderer) load() (*template.Template, error) {
	var (
		src []byte
		err error
	)
	if r.dir == "" {
		src, err = builtin.ReadFile("templates/" + TemplateName)
	} else {
		src, err = os.ReadFile(filepath.Join(r.dir, TemplateName))
	}
	if err != nil {
		return nil, err
	}
	return template.New(TemplateName).Funcs(funcs).Option("missingkey=error").Parse(string(src))
}
