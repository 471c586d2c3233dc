package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-tasklist-client/api"
	"github.com/jrsteele09/go-tasklist-client/authstate"
	"github.com/jrsteele09/go-tasklist-client/credentials"
	"github.com/jrsteele09/go-tasklist-client/internal/config"
	"github.com/jrsteele09/go-tasklist-client/provider"
	"github.com/jrsteele09/go-tasklist-client/provider/google"
	"github.com/jrsteele09/go-tasklist-client/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("tasklist")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	displayAppname(cfg.AppName)

	store := credentials.New(credentials.NewKeyringStore(cfg.KeyringService))
	client := api.New(cfg.APIBaseURL, func() string {
		if tokens := store.Tokens(); tokens != nil {
			return tokens.AccessToken
		}
		return ""
	}, api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))

	manager, err := session.NewManager(google.New(), client, store, provider.Config{
		WebClientID: cfg.GoogleWebClientID,
		IOSClientID: cfg.GoogleIOSClientID,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	auth := authstate.NewStore(manager)
	auth.RefreshAuthStatus(ctx)

	command := "status"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "status":
		printState(auth.State(), manager)
	case "login":
		result, err := auth.SignIn(ctx)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Println("Sign-in cancelled")
			return nil
		}
		fmt.Printf("Signed in as %s <%s>\n", result.User.Username, result.User.Email)
	case "logout":
		auth.SignOut(ctx)
		fmt.Println("Signed out")
	case "lists":
		return printLists(ctx, auth.State(), client)
	default:
		return fmt.Errorf("unknown command %q (expected status, login, logout or lists)", command)
	}
	return nil
}

func printState(state authstate.State, manager *session.Manager) {
	if !state.IsAuthenticated {
		fmt.Println("Not signed in")
		return
	}
	fmt.Printf("Signed in as %s <%s>\n", state.User.Username, state.User.Email)
	if expiry := manager.TokenExpiresAt(); !expiry.IsZero() {
		fmt.Printf("Token expires at %s\n", expiry)
	}
}

func printLists(ctx context.Context, state authstate.State, client *api.Client) error {
	if !state.IsAuthenticated {
		fmt.Println("Not signed in")
		return nil
	}

	lists, err := client.UserLists(ctx, state.User.UserID)
	if err != nil {
		return err
	}
	for _, list := range lists {
		fmt.Printf("%s (v%d)\n", list.ListName, list.Version)
		tasks, err := client.CurrentTasks(ctx, list.ListID)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			marker := " "
			if task.IsComplete {
				marker = "x"
			}
			fmt.Printf("  [%s] %s\n", marker, task.TaskName)
		}
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
