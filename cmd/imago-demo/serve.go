package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/imago-ui/imago/pkg/imagebutton"
	"github.com/imago-ui/imago/pkg/live"
	"github.com/imago-ui/imago/pkg/upload"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		uploadDir string
		maxSize   int64
		jsonLogs  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start the demo server.

Routes:
  GET  /         demo page
  GET  /live     WebSocket session endpoint
  POST /upload   multipart image upload
  GET  /metrics  Prometheus metrics

Examples:
  imago-demo serve
  imago-demo serve --addr=:8080 --upload-dir=/var/tmp/imago`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, uploadDir, maxSize, jsonLogs)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&uploadDir, "upload-dir", os.TempDir()+"/imago-uploads", "Directory for temp uploads")
	cmd.Flags().Int64Var(&maxSize, "max-size", imagebutton.DefaultMaxFileSize, "Max upload size in bytes")
	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "Emit JSON logs")

	return cmd
}

func runServe(addr, uploadDir string, maxSize int64, jsonLogs bool) error {
	logger := newLogger(jsonLogs)
	slog.SetDefault(logger)

	store, err := upload.NewDiskStore(uploadDir, maxSize)
	if err != nil {
		return err
	}

	uploadCfg := upload.DefaultConfig()
	uploadCfg.MaxFileSize = maxSize
	uploadCfg.Logger = logger

	client := upload.NewClient("http://" + listenHost(addr) + "/upload")

	mount := func() live.RenderFunc {
		btn := imagebutton.New(imagebutton.Config{
			Label:       "Upload image",
			MaxFileSize: maxSize,
			OnImageLoaded: func(img imagebutton.LoadedImage) {
				logger.Info("image loaded", "name", img.File.Name, "bytes", len(img.DataURL))
			},
			OnImageUpload: client.Func(),
			OnImageUploaded: func(resp any) {
				if r, ok := resp.(*upload.Response); ok {
					logger.Info("image uploaded", "temp_id", r.TempID)
				}
			},
			OnImageUploadError: func(err error) {
				logger.Warn("image upload failed", "error", err)
			},
		})
		return btn.Render
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", servePage)
	r.Handle("/live", live.NewHandler(mount, live.WithLogger(logger)))
	r.Post("/upload", upload.HandlerWithConfig(store, uploadCfg).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Expired temp uploads get swept while the server runs.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := store.Cleanup(ctx, uploadCfg.TempExpiry); err != nil {
					logger.Warn("upload cleanup failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(jsonLogs bool) *slog.Logger {
	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return slog.New(handler)
}

// listenHost turns a listen address into something dialable, mapping
// ":8080" to "localhost:8080".
func listenHost(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
