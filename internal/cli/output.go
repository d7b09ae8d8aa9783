package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Room mirrors the API's room payload
type Room struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Members   []string  `json:"members"`
	Started   bool      `json:"started"`
	CreatedAt time.Time `json:"created_at"`
}

// Player mirrors the API's player payload
type Player struct {
	Username          string `json:"username"`
	PreferenceMajor   string `json:"preference_major"`
	PreferenceMinor   string `json:"preference_minor"`
	RequestedPosition int    `json:"requested_position"`
	Role              string `json:"role,omitempty"`
}

// JoinResult mirrors the API's join payload
type JoinResult struct {
	Created bool `json:"created"`
	Room    Room `json:"room"`
}

// StartResult mirrors the API's start payload
type StartResult struct {
	Started   bool              `json:"started"`
	Roles     map[string]string `json:"roles,omitempty"`
	TurnOrder []string          `json:"turn_order,omitempty"`
	Seq       string            `json:"seq,omitempty"`
}

// NewRoom mirrors the API's room-suggestion payload
type NewRoom struct {
	RoomID string `json:"room_id"`
}

// HealthResult mirrors the API's health payload
type HealthResult struct {
	Status string `json:"status"`
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case []Player:
		o.printPlayers(v)
	case JoinResult:
		o.printJoinResult(v)
	case StartResult:
		o.printStartResult(v)
	case NewRoom:
		fmt.Printf("Room code: %s\n", v.RoomID)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRoom(r Room) {
	state := "waiting"
	if r.Started {
		state = "started"
	}
	fmt.Printf("Room %s (%s)\n", r.ID, state)
	fmt.Printf("  Owner: %s\n", r.Owner)
	fmt.Printf("  Members (%d): %s\n", len(r.Members), strings.Join(r.Members, ", "))
}

func (o *Output) printPlayers(players []Player) {
	for _, p := range players {
		line := fmt.Sprintf("  %s  major=%q minor=%q pos=%d",
			p.Username, p.PreferenceMajor, p.PreferenceMinor, p.RequestedPosition)
		if p.Role != "" {
			line += "  role=" + p.Role
		}
		fmt.Println(line)
	}
}

func (o *Output) printJoinResult(j JoinResult) {
	if j.Created {
		fmt.Printf("Created room %s\n", j.Room.ID)
	} else {
		fmt.Printf("Joined room %s\n", j.Room.ID)
	}
	o.printRoom(j.Room)
}

func (o *Output) printStartResult(s StartResult) {
	if !s.Started {
		fmt.Println("Not started: not enough players yet")
		return
	}
	fmt.Println("Round started")

	usernames := make([]string, 0, len(s.Roles))
	for u := range s.Roles {
		usernames = append(usernames, u)
	}
	sort.Strings(usernames)
	for _, u := range usernames {
		fmt.Printf("  %s: %s\n", u, s.Roles[u])
	}

	if len(s.TurnOrder) > 0 {
		fmt.Printf("Turn order: %s\n", strings.Join(s.TurnOrder, " -> "))
	}
}
