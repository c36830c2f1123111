// ABOUTME: CLI commands for managing workout spaces (gyms).
// ABOUTME: Supports add, list, show, default, equipment, and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
)

var (
	gymEquipment   string
	gymDescription string
	gymDefault     bool
	gymTemporary   bool
)

var gymCmd = &cobra.Command{
	Use:   "gym",
	Short: "Manage gyms",
	Long: `Manage workout spaces and the equipment available in each.

A gym constrains what the AI coach will program: no barbell, no barbell
lifts. At most one gym is the default; workouts started without --gym
use it.

COMMANDS:

  add        Add a gym
  list       List gyms
  show       View a gym's equipment
  default    Make a gym the default
  equipment  List known equipment ids
  delete     Remove a gym

Temporary gyms (--temporary) are for travel: they expire after a day and
are skipped when picking defaults.`,
}

var gymAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a gym",
	Long: `Add a workout space.

Examples:
  lift gym add "Home" -e barbell,squat_rack,bench --default
  lift gym add "Hotel Mariott" -e dumbbell,treadmill --temporary`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		s := models.NewWorkoutSpace(name)
		s.Description = gymDescription
		s.IsDefault = gymDefault
		if gymEquipment != "" {
			for _, id := range splitList(gymEquipment) {
				if !storage.ValidEquipmentID(id) {
					color.Yellow("⚠ Unknown equipment %q skipped (see 'lift gym equipment')", id)
					continue
				}
				s.EquipmentIDs = append(s.EquipmentIDs, id)
			}
		}
		if gymTemporary {
			s.WithExpiry(time.Now().Add(24 * time.Hour))
		}

		if err := store.CreateSpace(s); err != nil {
			return fmt.Errorf("failed to create gym: %w", err)
		}

		color.Green("✓ Added gym %s", s.Name)
		fmt.Printf("  ID: %d\n", s.ID)
		if s.IsDefault {
			fmt.Println("  Set as default")
		}
		return nil
	},
}

var gymListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List gyms",
	RunE: func(cmd *cobra.Command, args []string) error {
		spaces, err := store.ListSpaces()
		if err != nil {
			return fmt.Errorf("failed to list gyms: %w", err)
		}

		if len(spaces) == 0 {
			fmt.Println("No gyms yet. Add one with 'lift gym add'.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range spaces {
			marker := " "
			if s.IsDefault {
				marker = color.GreenString("*")
			}
			extra := ""
			if s.IsTemporary {
				extra = faint.Sprint(" (temporary)")
			}
			fmt.Printf("%s %s %s %s%s\n",
				marker,
				faint.Sprintf("%3d", s.ID),
				padRight(s.Name, 24),
				faint.Sprintf("%d equipment", len(s.EquipmentIDs)),
				extra)
		}
		return nil
	},
}

var gymShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show gym details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid gym id: %s", args[0])
		}

		s, err := store.GetSpace(id)
		if err != nil {
			return fmt.Errorf("gym not found: %d", id)
		}

		fmt.Printf("Gym: %s\n", s.Name)
		if s.Description != "" {
			fmt.Printf("Description: %s\n", s.Description)
		}
		if s.IsDefault {
			fmt.Println("Default: yes")
		}
		if s.IsTemporary && s.ExpiresAt != nil {
			fmt.Printf("Expires: %s\n", s.ExpiresAt.Format("2006-01-02 15:04"))
		}
		if len(s.EquipmentIDs) > 0 {
			fmt.Println("Equipment:")
			for _, id := range s.EquipmentIDs {
				fmt.Printf("  %s\n", id)
			}
		}
		return nil
	},
}

var gymDefaultCmd = &cobra.Command{
	Use:   "default <id>",
	Short: "Make a gym the default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid gym id: %s", args[0])
		}

		if err := store.SetDefaultSpace(id); err != nil {
			return fmt.Errorf("failed to set default gym: %w", err)
		}

		s, err := store.GetSpace(id)
		if err != nil {
			return err
		}
		color.Green("✓ %s is now the default gym", s.Name)
		return nil
	},
}

var gymEquipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "List known equipment ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := store.ListEquipment()
		if err != nil {
			return fmt.Errorf("failed to list equipment: %w", err)
		}

		faint := color.New(color.Faint)
		for _, eq := range items {
			portable := ""
			if eq.IsPortable {
				portable = faint.Sprint("portable")
			}
			fmt.Printf("%s %s %s\n",
				padRight(eq.ID, 16),
				padRight(eq.Category, 12),
				portable)
		}
		return nil
	},
}

var gymDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a gym",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid gym id: %s", args[0])
		}

		if err := store.DeleteSpace(id); err != nil {
			return fmt.Errorf("failed to delete gym: %w", err)
		}

		color.Green("✓ Deleted gym %d", id)
		return nil
	},
}

func init() {
	gymAddCmd.Flags().StringVarP(&gymEquipment, "equipment", "e", "", "comma-separated equipment ids")
	gymAddCmd.Flags().StringVarP(&gymDescription, "description", "d", "", "gym description")
	gymAddCmd.Flags().BoolVar(&gymDefault, "default", false, "make this the default gym")
	gymAddCmd.Flags().BoolVar(&gymTemporary, "temporary", false, "temporary gym (travel), expires in a day")

	gymCmd.AddCommand(gymAddCmd)
	gymCmd.AddCommand(gymListCmd)
	gymCmd.AddCommand(gymShowCmd)
	gymCmd.AddCommand(gymDefaultCmd)
	gymCmd.AddCommand(gymEquipmentCmd)
	gymCmd.AddCommand(gymDeleteCmd)
	rootCmd.AddCommand(gymCmd)
}
