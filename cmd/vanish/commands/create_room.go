package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// create-room: ask a running relay's admin API for a fresh room.
func createRoomCmd() *cobra.Command {
	var (
		ttl        time.Duration
		maxMembers int
	)

	cmd := &cobra.Command{
		Use:   "create-room",
		Short: "Create a room on a running relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]int{
				"ttl_seconds": int(ttl.Seconds()),
				"max_members": maxMembers,
			})
			if err != nil {
				return err
			}

			resp, err := http.Post(serverURL+"/admin/rooms", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusCreated {
				return fmt.Errorf("relay refused room creation: %s", resp.Status)
			}

			var out struct {
				RoomID string `json:"room_id"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			fmt.Println(out.RoomID)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Minute, "room time-to-live")
	cmd.Flags().IntVar(&maxMembers, "max-members", 0, "member cap (0 = server default)")
	return cmd
}
