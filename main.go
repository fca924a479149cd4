package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docgen/app"
	"docgen/config"
	"docgen/doc"
	"docgen/export"
	"docgen/log"
	"docgen/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version      = "0.3.0"
	languageFlag string
	docTypeFlag  string
	latencyFlag  time.Duration

	renderFileFlag     string
	renderOutDirFlag   string
	renderFilenameFlag string
	renderCopyFlag     bool

	rootCmd = &cobra.Command{
		Use:           "docgen",
		Short:         "DocGen - Generate Markdown documentation from source code",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("docgen needs a terminal; use 'docgen render' for scripts")
			}

			cfg, err := effectiveConfig(cmd)
			if err != nil {
				return err
			}
			return app.Run(ctx, cfg)
		},
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render documentation for a file or stdin without the UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg, err := effectiveConfig(cmd)
			if err != nil {
				return err
			}

			collector := session.NewCollector(session.Options{
				DocType:  cfg.DefaultDocType,
				Language: cfg.DefaultLanguage,
			})
			if err := readInput(collector, cmd.InOrStdin()); err != nil {
				return err
			}

			var document doc.Document
			if err := collector.Generate(cmd.Context(), func(req doc.Request) {
				document = doc.Generate(req)
			}); err != nil {
				return err
			}

			if renderCopyFlag {
				if err := export.CopyToClipboard(document.Markdown); err != nil {
					return err
				}
			}
			if renderOutDirFlag == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), document.Markdown)
				return err
			}
			download, err := export.Save(document.Markdown, renderOutDirFlag, renderFilenameFlag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s, %d bytes)\n", download.Path, download.ContentType, download.Size)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of docgen",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("docgen version %s\n", version)
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug info like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("Log: %s\n", log.FileName())
			return nil
		},
	}
)

// effectiveConfig loads the config file and applies command line overrides.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.LoadConfig()
	if cmd.Flags().Changed("language") {
		l, err := doc.ParseLanguage(languageFlag)
		if err != nil {
			return nil, err
		}
		cfg.DefaultLanguage = l
	}
	if cmd.Flags().Changed("type") {
		d, err := doc.ParseDocType(docTypeFlag)
		if err != nil {
			return nil, err
		}
		cfg.DefaultDocType = d
	}
	if cmd.Flags().Changed("latency") {
		cfg.AnalysisLatencyMs = int(latencyFlag / time.Millisecond)
	}
	return cfg, nil
}

// readInput loads --file, or stdin when it is not a terminal.
func readInput(collector *session.Collector, stdin io.Reader) error {
	if renderFileFlag != "" {
		if !session.HasSourceExtension(renderFileFlag) {
			log.WarningLog.Printf("%s does not look like a JavaScript or TypeScript file", renderFileFlag)
		}
		return collector.LoadFile(renderFileFlag)
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("no input: pass --file or pipe code on stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	collector.SetText(string(data))
	return nil
}

func init() {
	languages := make([]string, 0, len(doc.Languages()))
	for _, l := range doc.Languages() {
		languages = append(languages, l.String())
	}
	docTypes := make([]string, 0, len(doc.DocTypes()))
	for _, d := range doc.DocTypes() {
		docTypes = append(docTypes, d.String())
	}

	rootCmd.PersistentFlags().StringVarP(&languageFlag, "language", "l", "",
		"Language of the code ("+strings.Join(languages, ", ")+")")
	rootCmd.PersistentFlags().StringVarP(&docTypeFlag, "type", "t", "",
		"Documentation type ("+strings.Join(docTypes, ", ")+")")
	rootCmd.Flags().DurationVar(&latencyFlag, "latency", 0,
		"Simulated analysis time, e.g. 1.5s (default from config)")

	renderCmd.Flags().StringVarP(&renderFileFlag, "file", "f", "", "Source file to document (default stdin)")
	renderCmd.Flags().StringVar(&renderOutDirFlag, "out-dir", "", "Save the documentation into this directory instead of printing it")
	renderCmd.Flags().StringVar(&renderFilenameFlag, "filename", export.DefaultFilename, "File name used with --out-dir")
	renderCmd.Flags().BoolVar(&renderCopyFlag, "copy", false, "Also copy the documentation to the clipboard")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(debugCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
