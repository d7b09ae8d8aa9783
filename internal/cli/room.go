package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room operations",
	}

	cmd.AddCommand(newRoomNewCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomPlayersCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomStartCmd())
	cmd.AddCommand(newRoomQRCmd())

	return cmd
}

func newRoomNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Suggest a fresh room code",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result NewRoom
			if err := client.Post("/api/v1/rooms", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room_id>",
		Short: "Show a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Get("/api/v1/rooms/"+args[0], &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <room_id>",
		Short: "List a room's players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player
			if err := client.Get("/api/v1/rooms/"+args[0]+"/players", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var (
		major    string
		minor    string
		position int
	)

	cmd := &cobra.Command{
		Use:   "join <room_id>",
		Short: "Join a room, creating it if it doesn't exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Username == "" {
				return fmt.Errorf("username required (--username or GHOSTGAME_USERNAME)")
			}

			body := map[string]any{
				"username":         cfg.Username,
				"preference_major": major,
				"preference_minor": minor,
			}
			if position != 0 {
				body["requested_position"] = position
			}

			var result JoinResult
			if err := client.Post("/api/v1/rooms/"+args[0]+"/join", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&major, "major", "", "Major word preference (required)")
	cmd.Flags().StringVar(&minor, "minor", "", "Minor word preference (required)")
	cmd.Flags().IntVar(&position, "position", 0, "Requested ghost position 1-9 (default 9)")
	_ = cmd.MarkFlagRequired("major")
	_ = cmd.MarkFlagRequired("minor")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <room_id>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Username == "" {
				return fmt.Errorf("username required (--username or GHOSTGAME_USERNAME)")
			}

			body := map[string]any{"username": cfg.Username}
			if err := client.Post("/api/v1/rooms/"+args[0]+"/leave", body, nil); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Left room " + args[0])
			return nil
		},
	}
}

func newRoomStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <room_id>",
		Short: "Start the round and deal roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StartResult
			if err := client.Post("/api/v1/rooms/"+args[0]+"/start", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomQRCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "qr <room_id>",
		Short: "Download the room's join QR code as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := client.GetRaw("/api/v1/rooms/" + args[0] + "/qr")
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = args[0] + ".png"
			}
			if err := os.WriteFile(outFile, png, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			NewOutput(cfg.Output).PrintMessage("Wrote " + outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "f", "", "Output file (default <room_id>.png)")

	return cmd
}
