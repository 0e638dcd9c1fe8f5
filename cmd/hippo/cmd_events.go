package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantorre/hippo/internal/events"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Dump persisted events from a run database",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			dbPath, _ := cmd.Flags().GetString("db")
			agentID, _ := cmd.Flags().GetString("agent")
			kind, _ := cmd.Flags().GetString("kind")
			limit, _ := cmd.Flags().GetInt("limit")

			if dbPath == "" {
				return fmt.Errorf("--db is required")
			}

			db, err := events.NewSQLiteSink(dbPath)
			if err != nil {
				return fmt.Errorf("opening event database: %w", err)
			}
			defer db.Close()

			filter := events.Filter{
				Agent: agentID,
				Kind:  events.Kind(kind),
				Limit: limit,
			}
			evts, err := db.Dump(filter)
			if err != nil {
				return fmt.Errorf("reading events: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(evts)
			}
			for _, e := range evts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s", e.Time.Format("15:04:05.000"), e.Agent, e.Kind)
				switch e.Kind {
				case events.KindLandmarkDiscovered:
					fmt.Fprintf(cmd.OutOrStdout(), " %s type=%s", e.LandmarkID, e.LandmarkType)
				case events.KindSpatialMapUpdated:
					fmt.Fprintf(cmd.OutOrStdout(), " %s", e.UpdateType)
				case events.KindSynapticLearning:
					fmt.Fprintf(cmd.OutOrStdout(), " %s %s %.4f->%.4f", e.LearningType, e.Connection, e.OldWeight, e.NewWeight)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d events\n", len(evts))
			return nil
		},
	}

	cmd.Flags().String("db", "", "SQLite event database path")
	cmd.Flags().String("agent", "", "Filter by agent ID")
	cmd.Flags().String("kind", "", "Filter by event kind")
	cmd.Flags().Int("limit", 0, "Maximum events to return (0 = all)")

	return cmd
}
