package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/voidshard/sslcheck/internal/logging"
	"github.com/voidshard/sslcheck/internal/utils"
	"github.com/voidshard/sslcheck/pkg/api/http/client"
	"github.com/voidshard/sslcheck/pkg/api/http/common"
	"github.com/voidshard/sslcheck/pkg/assess"
	"github.com/voidshard/sslcheck/pkg/errors"
	"github.com/voidshard/sslcheck/pkg/report"
	"github.com/voidshard/sslcheck/pkg/structs"
)

const (
	docAssess = `Run a TLS assessment of a host and print a report, or the raw results.`

	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// errAssessFailed is returned once the failure description has been printed.
var errAssessFailed = fmt.Errorf("assessment failed")

type optsAssess struct {
	optsGeneral

	Host           string `long:"host" env:"HOST" default:"www.ssllabs.com" description:"Host to assess"`
	ProgressReport string `long:"progress-report" env:"PROGRESS_REPORT" default:"True" description:"Print a dot per second waited (True to enable)"`
	Cached         string `long:"cached" env:"CACHED" default:"True" description:"Accept cached results up to 24h old (True to enable)"`
	RawResults     string `long:"raw-results" env:"RAW_RESULTS" default:"False" description:"Include the raw results in the report (True to enable)"`
	Formatted      string `long:"formatted" env:"FORMATTED" default:"True" description:"Render a report rather than print the raw results (True to enable)"`

	APIURL      string `long:"api-url" env:"API_URL" default:"https://api.ssllabs.com/api/v2/" description:"Assessment API base address"`
	TemplateDir string `long:"template-dir" env:"TEMPLATE_DIR" description:"Load report.tmpl from this directory"`
	CACert      string `long:"ca-cert" env:"CA_CERT" description:"CA bundle to trust for the API"`
	Output      string `long:"output" env:"OUTPUT" default:"text" choice:"text" choice:"json" choice:"yaml" description:"Encoding of raw results"`
}

func (c *optsAssess) Execute(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log, err := logging.New(c.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	return c.run(ctx, log, os.Stdout)
}

// run assesses the host and writes whatever the user should see to out.
func (c *optsAssess) run(ctx context.Context, log *zap.Logger, out io.Writer) error {
	req, err := structs.NewJobRequest(c.Host, utils.IsTrue(c.Cached))
	if err != nil {
		return err
	}

	tlsCfg, err := utils.TLSConfig(c.CACert)
	if err != nil {
		return err
	}

	apiURL := c.APIURL
	if apiURL == "" {
		apiURL = common.DefaultBaseURL
	}
	cli, err := client.New(apiURL, client.WithLogger(log), client.WithTLSConfig(tlsCfg))
	if err != nil {
		return err
	}

	opts := assess.OptionsDefault()
	opts.Logger = log
	opts.Formatted = utils.IsTrue(c.Formatted)
	opts.RawResults = utils.IsTrue(c.RawResults)
	opts.Renderer = report.NewTemplateRenderer(c.TemplateDir)
	if utils.IsTrue(c.ProgressReport) {
		opts.Progress = assess.NewWriterProgress(out)
	}

	driver, err := assess.New(cli, req, opts)
	if err != nil {
		return err
	}

	result := driver.Gather(ctx)
	if result.Failed() {
		fmt.Fprintln(out, result.String())
		return errAssessFailed
	}

	text := result.String()
	if !result.Formatted {
		text, err = encode(result.Document, c.Output)
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(out, text)
	return nil
}

// encode writes the raw document in the requested format. Text is the
// document exactly as the service sent it.
func encode(doc json.RawMessage, format string) (string, error) {
	switch format {
	case "", outputText:
		return string(doc), nil
	case outputJSON:
		var v interface{}
		if err := json.Unmarshal(doc, &v); err != nil {
			return "", err
		}
		data, err := json.MarshalIndent(v, "", "  ")
		return string(data), err
	case outputYAML:
		var v interface{}
		if err := json.Unmarshal(doc, &v); err != nil {
			return "", err
		}
		data, err := yaml.Marshal(v)
		return string(data), err
	default:
		return "", fmt.Errorf("%w: unknown output %q", errors.ErrInvalidArg, format)
	}
}
