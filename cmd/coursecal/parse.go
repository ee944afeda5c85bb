package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/coursecal/internal/config"
	"github.com/jackzampolin/coursecal/internal/ics"
	"github.com/jackzampolin/coursecal/internal/textdoc"
	"github.com/jackzampolin/coursecal/internal/types"
)

var (
	parseEngine     string
	parseCourseName string
	parseCourseCode string
	parseSemester   string
	parseYear       int
	parseICSOut     string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract calendar events from a syllabus text file",
	Long: `Parse a plain-text syllabus file and print the extracted events as JSON.

Examples:
  coursecal parse syllabus.txt
  coursecal parse syllabus.txt --engine pattern
  coursecal parse syllabus.txt --course "Contracts" --code "LAW 501" --year 2025
  coursecal parse syllabus.txt --ics events.ics`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		doc, err := textdoc.Decode(data)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", args[0], err)
		}

		hint := types.CourseHint{
			Name:     parseCourseName,
			Code:     parseCourseCode,
			Semester: parseSemester,
			Year:     parseYear,
		}

		orchestrator := buildOrchestrator(cm.Get(), logger)

		var result types.ExtractionResult
		switch parseEngine {
		case "pattern":
			result = orchestrator.ExtractPattern(cmd.Context(), doc.Text, hint)
		case "llm", "":
			result = orchestrator.ExtractLLM(cmd.Context(), doc.Text, hint)
		default:
			return fmt.Errorf("unknown engine %q (want llm or pattern)", parseEngine)
		}

		if !result.Success {
			return fmt.Errorf("extraction failed: %s", result.Error)
		}

		if parseICSOut != "" {
			icsDoc, err := ics.Export(result.Data)
			if err != nil {
				return err
			}
			if err := os.WriteFile(parseICSOut, []byte(icsDoc), 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d events to %s\n", len(result.Data.Events), parseICSOut)
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseEngine, "engine", "llm", "extraction engine: llm or pattern")
	parseCmd.Flags().StringVar(&parseCourseName, "course", "", "course name hint")
	parseCmd.Flags().StringVar(&parseCourseCode, "code", "", "course code hint")
	parseCmd.Flags().StringVar(&parseSemester, "semester", "", "semester hint")
	parseCmd.Flags().IntVar(&parseYear, "year", 0, "year hint")
	parseCmd.Flags().StringVar(&parseICSOut, "ics", "", "write events as an ICS calendar to this path")

	rootCmd.AddCommand(parseCmd)
}
