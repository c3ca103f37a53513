// Package main provides the player CLI entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	radiov1 "github.com/osa030/radio247/internal/api/radiov1"
	"github.com/osa030/radio247/internal/api/radiov1/radiov1connect"
)

var (
	app       = kingpin.New("radio247-playercli", "radio247 player client")
	server    = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	sessionID = app.Flag("session", "Session ID (or set RADIO247_SESSION env)").Envar("RADIO247_SESSION").String()

	// session commands
	createCmd = app.Command("create", "Create a listener session and print its ID")
	endCmd    = app.Command("end", "End the listener session")
	stateCmd  = app.Command("state", "Show the player state").Alias("status")

	// playback commands
	playCmd          = app.Command("play", "Play a single episode")
	playEpisode      = playCmd.Arg("episode-id", "Episode (channel) ID").Required().String()
	playListCmd      = app.Command("play-list", "Play a list of episodes (whole catalogue when none given)")
	playListStart    = playListCmd.Flag("start", "Start index in the list").Default("0").Int()
	playListEpisodes = playListCmd.Arg("episode-ids", "Episode (channel) IDs").Strings()
	toggleCmd        = app.Command("toggle", "Toggle play/pause")
	nextCmd          = app.Command("next", "Play the next episode")
	prevCmd          = app.Command("prev", "Play the previous episode")
	volumeCmd        = app.Command("volume", "Set the volume")
	volumeLevel      = volumeCmd.Arg("level", "Volume between 0 and 1").Required().Float64()
	muteCmd          = app.Command("mute", "Toggle mute")
	loopCmd          = app.Command("loop", "Toggle loop")
	shuffleCmd       = app.Command("shuffle", "Toggle shuffle")
	clearCmd         = app.Command("clear", "Clear the playlist")

	// catalogue commands
	homeCmd     = app.Command("home", "Show the homepage listing")
	episodeCmd  = app.Command("episode", "Show an episode page")
	episodeSlug = episodeCmd.Arg("slug", "Episode slug (1-based position)").Required().String()

	// subscribe command
	subscribeCmd = app.Command("subscribe", "Subscribe to player state changes")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	player := radiov1connect.NewPlayerServiceClient(http.DefaultClient, *server)
	catalog := radiov1connect.NewCatalogServiceClient(http.DefaultClient, *server)

	ctx := context.Background()

	switch command {
	case createCmd.FullCommand():
		create(ctx, player)
		return
	case homeCmd.FullCommand():
		home(ctx, catalog)
		return
	case episodeCmd.FullCommand():
		showEpisode(ctx, catalog, *episodeSlug)
		return
	}

	if *sessionID == "" {
		fmt.Println("Error: session ID is required (use --session or RADIO247_SESSION env)")
		os.Exit(1)
	}
	session := &radiov1.SessionRequest{SessionID: *sessionID}

	switch command {
	case endCmd.FullCommand():
		if _, err := player.EndSession(ctx, connect.NewRequest(session)); err != nil {
			fail(err)
		}
		fmt.Println("Session ended")
	case stateCmd.FullCommand():
		printState(call(player.GetState(ctx, connect.NewRequest(session))))
	case playCmd.FullCommand():
		printState(call(player.PlaySingle(ctx, connect.NewRequest(&radiov1.PlaySingleRequest{
			SessionID: *sessionID,
			EpisodeID: *playEpisode,
		}))))
	case playListCmd.FullCommand():
		printState(call(player.PlayList(ctx, connect.NewRequest(&radiov1.PlayListRequest{
			SessionID:  *sessionID,
			EpisodeIDs: *playListEpisodes,
			StartIndex: *playListStart,
		}))))
	case toggleCmd.FullCommand():
		printState(call(player.TogglePlay(ctx, connect.NewRequest(session))))
	case nextCmd.FullCommand():
		printState(call(player.PlayNext(ctx, connect.NewRequest(session))))
	case prevCmd.FullCommand():
		printState(call(player.PlayPrevious(ctx, connect.NewRequest(session))))
	case volumeCmd.FullCommand():
		printState(call(player.SetVolume(ctx, connect.NewRequest(&radiov1.SetVolumeRequest{
			SessionID: *sessionID,
			Level:     volumeLevel,
		}))))
	case muteCmd.FullCommand():
		printState(call(player.ToggleMute(ctx, connect.NewRequest(session))))
	case loopCmd.FullCommand():
		printState(call(player.ToggleLoop(ctx, connect.NewRequest(session))))
	case shuffleCmd.FullCommand():
		printState(call(player.ToggleShuffle(ctx, connect.NewRequest(session))))
	case clearCmd.FullCommand():
		printState(call(player.Clear(ctx, connect.NewRequest(session))))
	case subscribeCmd.FullCommand():
		subscribe(ctx, player, *sessionID)
	}
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func call(resp *connect.Response[radiov1.StateResponse], err error) radiov1.PlayerState {
	if err != nil {
		fail(err)
	}
	return resp.Msg.State
}

func create(ctx context.Context, client *radiov1connect.PlayerServiceClient) {
	resp, err := client.CreateSession(ctx, connect.NewRequest(&radiov1.CreateSessionRequest{}))
	if err != nil {
		fail(err)
	}
	fmt.Printf("Session created: %s\n", resp.Msg.SessionID)
	fmt.Printf("Use --session %s or export RADIO247_SESSION=%s\n", resp.Msg.SessionID, resp.Msg.SessionID)
}

func home(ctx context.Context, client *radiov1connect.CatalogServiceClient) {
	resp, err := client.Home(ctx, connect.NewRequest(&radiov1.HomeRequest{}))
	if err != nil {
		fail(err)
	}

	fmt.Printf("\n%s\n", resp.Msg.HeaderDate)
	fmt.Println("\n=== Últimos lançamentos ===")
	for _, e := range resp.Msg.Latest {
		printEpisodeLine(e)
	}
	fmt.Println("\n=== Todas as rádios ===")
	for _, e := range resp.Msg.All {
		printEpisodeLine(e)
	}
	fmt.Println()
}

func showEpisode(ctx context.Context, client *radiov1connect.CatalogServiceClient, slug string) {
	resp, err := client.GetEpisode(ctx, connect.NewRequest(&radiov1.GetEpisodeRequest{Slug: slug}))
	if err != nil {
		fail(err)
	}

	e := resp.Msg.Episode
	fmt.Printf("\n%s\n", e.Title)
	fmt.Printf("  ID: %s\n", e.ID)
	fmt.Printf("  Members: %s\n", e.Members)
	fmt.Printf("  Published: %s\n", e.PublishedAt)
	fmt.Printf("  Duration: %s\n", e.Duration)
	fmt.Printf("  Stream: %s\n", e.URL)
	fmt.Printf("  Cover: %s\n", e.Thumbnail)
	if e.Description != "" {
		fmt.Printf("\n%s\n", e.Description)
	}
	fmt.Println()
}

func printEpisodeLine(e radiov1.Episode) {
	fmt.Printf("  [%s] %s - %s (%s, %s) id=%s\n", e.Slug, e.Title, e.Members, e.PublishedAt, e.Duration, e.ID)
}

func subscribe(ctx context.Context, client *radiov1connect.PlayerServiceClient, sessionID string) {
	stream, err := client.Subscribe(ctx, connect.NewRequest(&radiov1.SubscribeRequest{SessionID: sessionID}))
	if err != nil {
		fail(err)
	}

	fmt.Println("Subscribed to player state. Press Ctrl+C to exit.")

	// Handle shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nUnsubscribing...")
		os.Exit(0)
	}()

	for stream.Receive() {
		n := stream.Msg()
		fmt.Printf("\n[Sequence: %d] ", n.SequenceNo)
		switch n.Type {
		case radiov1.NotificationTypeInitialState:
			fmt.Println("=== INITIAL STATE ===")
		case radiov1.NotificationTypeChangeState:
			fmt.Println("=== STATE CHANGED ===")
		default:
			fmt.Printf("=== UNKNOWN EVENT (%s) ===\n", n.Type)
		}
		printState(n.State)
	}

	if err := stream.Err(); err != nil {
		fmt.Printf("Stream error: %v\n", err)
	}
}

func printState(s radiov1.PlayerState) {
	fmt.Printf("\nSession: %s (version %d)\n", s.SessionID, s.Version)
	fmt.Printf("  State: %s\n", formatState(s.State))
	if s.CurrentEpisode != nil {
		fmt.Printf("  Now playing: [%d/%d] %s - %s\n",
			s.CurrentIndex+1, len(s.Episodes), s.CurrentEpisode.Title, s.CurrentEpisode.Members)
		fmt.Printf("  Stream: %s\n", s.CurrentEpisode.URL)
	}
	fmt.Printf("  Playlist: %d episodes (%s)\n", len(s.Episodes), s.TotalDuration)
	fmt.Printf("  Loop: %v  Shuffle: %v\n", s.IsLooping, s.IsShuffling)
	fmt.Printf("  Volume: %.2f (effective %.4f, muted %v)\n", s.Volume, s.EffectiveVolume, s.Muted)
	fmt.Printf("  Has previous: %v  Has next: %v\n", s.HasPrevious, s.HasNext)
}

func formatState(state string) string {
	switch state {
	case "playing":
		return "▶️  Playing"
	case "paused":
		return "⏸  Paused"
	case "idle":
		return "⏹  Idle"
	default:
		return "❓ Unknown"
	}
}
