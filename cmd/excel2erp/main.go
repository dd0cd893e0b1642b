package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/excel2erp/excel2erp"
	"github.com/excel2erp/excel2erp/internal/logging"
	"github.com/excel2erp/excel2erp/internal/web"
	"github.com/joho/godotenv"
)

// fieldFlags collects repeated -field name=value pairs for one-shot
// conversions, standing in for the web form.
type fieldFlags map[string]string

func (f fieldFlags) String() string {
	pairs := make([]string, 0, len(f))
	for name, value := range f {
		pairs = append(pairs, name+"="+value)
	}
	return strings.Join(pairs, ",")
}

func (f fieldFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	f[name] = value
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	var (
		addr       = envOr("EXCEL2ERP_ADDR", ":7070")
		configPath = envOr("EXCEL2ERP_CONFIG", "excel2erp.yaml")
		assetsDir  = envOr("EXCEL2ERP_ASSETS", "assets")
		logLevel   = envOr("EXCEL2ERP_LOG_LEVEL", "info")
		logFormat  = envOr("EXCEL2ERP_LOG_FORMAT", "text")
		describe   bool
		convert    string
		source     string
		out        string
		fields     = make(fieldFlags)
	)
	flag.StringVar(&addr, "addr", addr, "listen address for the web server")
	flag.StringVar(&configPath, "config", configPath, "path to the conversion configuration")
	flag.StringVar(&assetsDir, "assets", assetsDir, "directory with logo assets")
	flag.StringVar(&logLevel, "log-level", logLevel, "log level (debug, info, warn, error)")
	flag.StringVar(&logFormat, "log-format", logFormat, "log format (text, json)")
	flag.BoolVar(&describe, "describe", false, "print a configuration summary and exit")
	flag.StringVar(&convert, "convert", "", "convert the given workbook and exit")
	flag.StringVar(&source, "source", "", "source name for -convert")
	flag.StringVar(&out, "out", "", "output path for -convert (default: the archive name)")
	flag.Var(fields, "field", "header field for -convert as name=value (repeatable)")
	flag.Parse()

	logging.Setup(logLevel, logFormat)

	cfg, err := excel2erp.LoadConfig(configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", configPath, "error", err)
		os.Exit(1)
	}

	switch {
	case describe:
		fmt.Print(excel2erp.DescribeConfig(cfg))
	case convert != "":
		if err := runConvert(cfg, convert, source, out, fields); err != nil {
			slog.Error("conversion failed", "file", convert, "error", err)
			os.Exit(1)
		}
	default:
		if err := serve(cfg, addr, assetsDir); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}

// runConvert performs a one-shot conversion from the command line. Date-typed
// fields are normalized the same way the web form normalizes them.
func runConvert(cfg *excel2erp.Config, path, source, out string, fields fieldFlags) error {
	if source == "" {
		return errors.New("-source is required with -convert")
	}

	types := make(map[string]excel2erp.PropertyType, len(cfg.Result.Header.Properties))
	for _, p := range cfg.Result.Header.Properties {
		types[p.Name] = p.Type
	}
	user := make(excel2erp.Record, len(fields))
	for name, value := range fields {
		if types[name].IsDate() {
			value = excel2erp.NormalizeDate(value)
		}
		user[name] = value
	}

	res, err := excel2erp.ConvertFile(path, cfg, source, user)
	if err != nil {
		return err
	}
	if out == "" {
		out = res.Name
	}
	if err := os.WriteFile(out, res.Archive, 0o644); err != nil {
		return err
	}
	slog.Info("archive written", "path", out, "rows", len(res.Detail))
	return nil
}

func serve(cfg *excel2erp.Config, addr, assetsDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The browser's close button triggers the same path as SIGINT.
	server := web.NewServer(cfg, web.Options{
		AssetsDir:  assetsDir,
		OnShutdown: stop,
	})

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr, "sources", len(cfg.Sources))
		errCh <- server.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("server stopped")
	return nil
}
