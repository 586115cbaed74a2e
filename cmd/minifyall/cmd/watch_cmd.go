package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"minifyall/internal/config"
	"minifyall/internal/core"
	"minifyall/internal/logger"
	"minifyall/internal/metrics"
	"minifyall/internal/watcher"
)

// watchCmd minifies files as they are saved.
var watchCmd = &cobra.Command{
	Use:   "watch [directories...]",
	Short: "Minify files whenever they are saved",
	Long: `watch listens for saves under the given directories (default: the current
directory) and minifies each supported file once writes settle.

Files are overwritten unless minifyOnSaveToNewFile is set, in which case a new
file is written next to each one. Changes to the settings file apply without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}
		if !settings.MinifyOnSave {
			logger.NotifyWarn("minifyOnSave is off in your settings; watching because it was asked for explicitly")
		}

		svc := newService()
		w, err := watcher.New(svc, watcher.Options{
			Target:   saveTarget(settings),
			Debounce: settings.Watch.Debounce,
		})
		if err != nil {
			return err
		}
		defer w.Stop()
		for _, dir := range args {
			if err := w.Add(dir); err != nil {
				return err
			}
		}

		loader.Watch(func(s *config.Settings, err error) {
			if err != nil {
				logger.NotifyError("settings not reloaded: %v", err)
				return
			}
			svc.Reconfigure(s)
			logger.SetMessagesMuted(s.DisableMessages)
			logger.Info("settings reloaded", "file", loader.ConfigFileUsed())
		})

		m := metrics.New()
		if metricsAddr != "" {
			go serveMetrics(metricsAddr, m)
		}

		ctx := cmd.Context()
		w.Start(ctx)
		logger.NotifyInfo("Watching %d director(ies); press Ctrl+C to stop", len(args))

		for {
			select {
			case <-ctx.Done():
				return nil
			case res := <-w.Results():
				m.Observe(res)
				logger.NotifyInfo("Minified %s -> %s: %s", res.Path, res.OutputPath, res.Sizes)
			case err := <-w.Errors():
				m.Failure(err)
				logger.NotifyError("%v", err)
			}
		}
	},
}

var metricsAddr string

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server error", "err", err)
	}
}

// saveTarget picks where saves are minified to. The watch target is fixed at
// start; a reload only changes how files are minified.
func saveTarget(s *config.Settings) core.Target {
	if s.MinifyOnSaveToNewFile {
		return core.TargetNewFile
	}
	return core.TargetInPlace
}

func init() {
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	rootCmd.AddCommand(watchCmd)
}
