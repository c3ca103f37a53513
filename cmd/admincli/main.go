// Package main provides the admin CLI entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	apiconnect "github.com/osa030/radio247/internal/api/connect"
	radiov1 "github.com/osa030/radio247/internal/api/radiov1"
	"github.com/osa030/radio247/internal/api/radiov1/radiov1connect"
)

var (
	app    = kingpin.New("radio247-admincli", "radio247 admin client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	token  = app.Flag("token", "Admin token (or set ADMIN_TOKEN env)").Envar("ADMIN_TOKEN").String()

	// sessions command
	sessionsCmd = app.Command("sessions", "List listener sessions").Alias("list")

	// end command
	endCmd     = app.Command("end", "End a listener session")
	endSession = endCmd.Arg("session-id", "Session ID (UUID)").Required().String()

	// reload command
	reloadCmd = app.Command("reload", "Reload the catalog from its sources")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *token == "" {
		fmt.Println("Error: admin token is required (use --token or ADMIN_TOKEN env)")
		os.Exit(1)
	}

	client := radiov1connect.NewAdminServiceClient(http.DefaultClient, *server)

	ctx := context.Background()

	switch command {
	case sessionsCmd.FullCommand():
		listSessions(ctx, client, *token)
	case endCmd.FullCommand():
		end(ctx, client, *token, *endSession)
	case reloadCmd.FullCommand():
		reload(ctx, client, *token)
	}
}

func listSessions(ctx context.Context, client *radiov1connect.AdminServiceClient, token string) {
	req := connect.NewRequest(&radiov1.ListSessionsRequest{})
	req.Header().Set(apiconnect.AdminTokenHeader, token)
	resp, err := client.ListSessions(ctx, req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sessions (%d):\n", resp.Msg.Count)
	for _, s := range resp.Msg.Sessions {
		current := s.CurrentEpisodeID
		if current == "" {
			current = "-"
		}
		fmt.Printf("  %s: %s (episode: %s, playlist: %d, subscribers: %d, created: %s, last seen: %s)\n",
			s.SessionID, s.State, current, s.PlaylistSize, s.Subscribers, s.CreatedAt, s.LastSeenAt)
	}
}

func end(ctx context.Context, client *radiov1connect.AdminServiceClient, token, sessionID string) {
	req := connect.NewRequest(&radiov1.AdminEndSessionRequest{SessionID: sessionID})
	req.Header().Set(apiconnect.AdminTokenHeader, token)
	resp, err := client.EndSession(ctx, req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if resp.Msg.Success {
		fmt.Println("Session ended")
	} else {
		fmt.Printf("Failed: %s\n", resp.Msg.Message)
	}
}

func reload(ctx context.Context, client *radiov1connect.AdminServiceClient, token string) {
	req := connect.NewRequest(&radiov1.ReloadCatalogRequest{})
	req.Header().Set(apiconnect.AdminTokenHeader, token)
	resp, err := client.ReloadCatalog(ctx, req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Catalog reloaded: %d episodes (loaded at %s)\n", resp.Msg.EpisodeCount, resp.Msg.LoadedAt)
}
