package workout

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/briangreenhill/fittrack/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

type CLI struct {
	writer         io.Writer
	workoutService *Service
	args           []string
	logger         *slog.Logger
	addr           string
	metrics        *metrics.Manager
	gatherer       prometheus.Gatherer
}

type CLIParams struct {
	Writer         io.Writer
	Logger         *slog.Logger
	WorkoutService *Service
	Args           []string
	// Addr is the listen address of the api command.
	Addr     string
	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer
}

func NewCLI(params CLIParams) *CLI {
	return &CLI{
		writer:         params.Writer,
		workoutService: params.WorkoutService,
		args:           params.Args,
		logger:         params.Logger,
		addr:           params.Addr,
		metrics:        params.Metrics,
		gatherer:       params.Gatherer,
	}
}

func (c *CLI) Run(args []string) error {
	if len(args) == 0 {
		c.Usage()
		return nil
	}

	switch args[0] {
	case "demo":
		if err := c.Demo(); err != nil {
			return err
		}
	case "summarize":
		if err := c.SummarizeOne(); err != nil {
			return err
		}
	case "batch":
		if err := c.Batch(); err != nil {
			return err
		}
	case "gpx":
		if err := c.ImportGPX(); err != nil {
			return err
		}
	case "api":
		if err := c.RunAPI(context.Background()); err != nil {
			return err
		}
	default:
		c.Usage()
	}
	return nil
}

func (c *CLI) Usage() {
	fmt.Fprintf(c.writer, "Usage: fittrack [-config file] [command] [flags]\n--help show this message\n\n"+
		"\tdemo\n"+
		"\tsummarize --tag RUN --payload 15000,1,75 [--json]\n"+
		"\tbatch --file packages.yaml [--strict] [--json]\n"+
		"\tgpx --file run.gpx --weight 75 [--height 180] [--json]\n"+
		"\tapi\n")
}

// Demo prints the reports of the reference packages.
func (c *CLI) Demo() error {
	results, err := c.workoutService.SummarizeAll(ReferencePackages(), true)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Fprintln(c.writer, res.Report.Message())
	}
	return nil
}

func (c *CLI) SummarizeOne() error {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(c.writer)
	var tag, payload string
	var asJSON bool
	fs.StringVar(&tag, "tag", "", "workout modality: SWM, RUN or WLK")
	fs.StringVar(&payload, "payload", "", "comma separated tracker readings")
	fs.BoolVar(&asJSON, "json", false, "print the report as JSON")
	fs.Usage = c.Usage

	if err := fs.Parse(c.args[1:]); err != nil {
		return err
	}

	values, err := ParsePayload(payload)
	if err != nil {
		return err
	}

	report, err := c.workoutService.Summarize(tag, values)
	if err != nil {
		return err
	}

	return c.print(asJSON, report)
}

func (c *CLI) Batch() error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(c.writer)
	var file string
	var strict, asJSON bool
	fs.StringVar(&file, "file", "", "path to a YAML packages file")
	fs.BoolVar(&strict, "strict", false, "stop at the first invalid package")
	fs.BoolVar(&asJSON, "json", false, "print reports as JSON")
	fs.Usage = c.Usage

	if err := fs.Parse(c.args[1:]); err != nil {
		return err
	}
	if file == "" {
		fs.Usage()
		return fmt.Errorf("batch: --file is required")
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("error reading packages file: %w", err)
	}
	defer f.Close()

	packages, err := ReadPackages(f)
	if err != nil {
		return err
	}

	results, err := c.workoutService.SummarizeAll(packages, strict)
	for _, res := range results {
		if perr := c.print(asJSON, res.Report); perr != nil {
			return perr
		}
	}
	if err != nil {
		if strict {
			return err
		}
		for _, e := range multierr.Errors(err) {
			c.logger.Warn("Skipped package", slog.Any("error", e))
		}
	}

	c.logger.Info("Batch processed",
		slog.Int("packages", len(packages)),
		slog.Int("summarized", len(results)),
		slog.Int("skipped", len(multierr.Errors(err))))

	return nil
}

func (c *CLI) ImportGPX() error {
	fs := flag.NewFlagSet("gpx", flag.ContinueOnError)
	fs.SetOutput(c.writer)
	var gpxFile string
	var opts GPXOptions
	var asJSON bool
	fs.StringVar(&gpxFile, "file", "", "path to gpx file")
	fs.Float64Var(&opts.WeightKg, "weight", 0, "body weight in kg")
	fs.Float64Var(&opts.HeightCm, "height", 0, "height in cm, summarizes the track as a walk")
	fs.BoolVar(&asJSON, "json", false, "print the report as JSON")
	fs.Usage = c.Usage

	if err := fs.Parse(c.args[1:]); err != nil {
		return err
	}
	if gpxFile == "" {
		fs.Usage()
		return fmt.Errorf("gpx: --file is required")
	}

	c.logger.Info("Importing gpx file", slog.String("gpx_file", gpxFile))

	gpxBytes, err := readGPXFile(gpxFile)
	if err != nil {
		return err
	}

	p, err := SampleFromGPX(gpxBytes, opts)
	if err != nil {
		return err
	}

	report, err := c.workoutService.Summarize(p.Tag, p.Payload)
	if err != nil {
		return err
	}

	return c.print(asJSON, report)
}

func (c *CLI) RunAPI(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	mux := NewAPI(c.logger, c.workoutService, c.metrics, c.gatherer)

	server := &http.Server{
		Addr:              c.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		c.logger.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			c.logger.Error("Error shutting down server", slog.Any("error", err))
		}
	}()

	c.logger.Info("Starting server", slog.String("addr", c.addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.logger.Error("Error starting server", slog.Any("error", err))
		cancel()
		return err
	}

	return nil
}

func (c *CLI) print(asJSON bool, report Report) error {
	if asJSON {
		return json.NewEncoder(c.writer).Encode(workoutResponse{Report: report, Message: report.Message()})
	}
	_, err := fmt.Fprintln(c.writer, report.Message())
	return err
}

// ParsePayload parses comma separated readings such as "15000,1,75".
func ParsePayload(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func readGPXFile(gpxFile string) ([]byte, error) {
	info, err := os.Stat(gpxFile)
	if err != nil {
		return nil, fmt.Errorf("error reading gpx file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("gpx file is a directory")
	}

	contents, err := os.ReadFile(gpxFile)
	if err != nil {
		return nil, err
	}

	return contents, nil
}
