package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/comalice/statetree"
	"github.com/comalice/statetree/internal/production"
)

// loadChart interprets a chart file into a fresh machine. The machine is
// left live unless keepEditing is set.
func loadChart(file string, log *slog.Logger, keepEditing bool) (*statetree.Machine, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := statetree.NewMachine(
		statetree.WithID(uuid.NewString()),
		statetree.WithLogger(log),
	)
	if err := m.InterpretReader(f); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if !keepEditing {
		if err := m.FinishEditing(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func printActive(m *statetree.Machine) {
	for _, p := range m.ActivePaths() {
		if p == statetree.Root {
			continue
		}
		if v, ok := m.Data(string(p)); ok && v != "" {
			fmt.Printf("%s = %s\n", p, v)
			continue
		}
		fmt.Println(p)
	}
}

func newRunCmd(logger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run <chart-file>",
		Short: "Interpret a chart file and print its active paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadChart(args[0], logger(), false)
			if err != nil {
				return err
			}
			printActive(m)
			return nil
		},
	}
}

func newFmtCmd(logger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <chart-file>",
		Short: "Print the canonical serialization of a chart file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadChart(args[0], logger(), true)
			if err != nil {
				return err
			}
			for _, line := range m.Serialize() {
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newDotCmd(logger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "dot <chart-file>",
		Short: "Export a chart file as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadChart(args[0], logger(), false)
			if err != nil {
				return err
			}
			v := &production.DefaultVisualizer{}
			fmt.Print(v.ExportDOT(m))
			return nil
		},
	}
}

func newSnapshotCmd(logger func() *slog.Logger) *cobra.Command {
	var (
		dir    string
		format string
		id     string
	)
	cmd := &cobra.Command{
		Use:   "snapshot <chart-file>",
		Short: "Save a replayable snapshot of a chart file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadChart(args[0], logger(), false)
			if err != nil {
				return err
			}

			snap := production.TakeSnapshot(m)
			if id != "" {
				snap.MachineID = id
			}

			var p production.Persister
			switch format {
			case "yaml":
				p, err = production.NewYAMLPersister(dir)
			case "json":
				p, err = production.NewJSONPersister(dir)
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			if err != nil {
				return err
			}
			if err := p.Save(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Printf("saved %s/%s.%s\n", dir, snap.MachineID, format)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the snapshot into")
	cmd.Flags().StringVar(&format, "format", "yaml", "snapshot format: yaml or json")
	cmd.Flags().StringVar(&id, "id", "", "machine ID (default: random UUID)")
	return cmd
}

func newWatchCmd(logger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <chart-file>",
		Short: "Reload a chart file on change and print its active paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			log := logger()

			reload := func() {
				m, err := loadChart(file, log, false)
				if err != nil {
					log.Error("reload failed", "file", file, "err", err)
					return
				}
				fmt.Println("---")
				printActive(m)
			}
			reload()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			if err := watcher.Add(file); err != nil {
				return err
			}

			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
						log.Debug("chart changed", "event", ev.String())
						reload()
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.Error("watch error", "err", err)
				case <-cmd.Context().Done():
					return nil
				}
			}
		},
	}
}
