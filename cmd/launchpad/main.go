// Command main is the launchpad client CLI. It drives the session and
// content pipeline against a running backend (usually cmd/devserver).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"launchpad/internal/api"
	"launchpad/internal/authmodal"
	"launchpad/internal/config"
	"launchpad/internal/content"
	"launchpad/internal/models"
	"launchpad/internal/observability"
	"launchpad/internal/session"
	"launchpad/internal/tokenstore"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  launchpad register -username <u> -email <e> -password <p> -confirm <p> -full-name <n>")
	fmt.Println("  launchpad login -email <e> -password <p>")
	fmt.Println("  launchpad logout")
	fmt.Println("  launchpad whoami")
	fmt.Println("  launchpad profile [-full-name <n>] [-bio <b>] [-location <l>] [-website <w>] [-avatar <a>]")
	fmt.Println("  launchpad create -title <t> -description <d> [-type teaser|trailer|poster|video|image]")
	fmt.Println("                   [-media-url <u> | -file <path>] [-thumbnail <u>] [-hashtags <h>]")
	fmt.Println("                   [-location <l>] [-scheduled <date>] [-private]")
	fmt.Println("                   [-youtube=<bool>] [-instagram=<bool>] [-twitter=<bool>]")
	os.Exit(1)
}

// consoleNotifier prints outcome messages the way the browser client shows
// toasts.
type consoleNotifier struct{}

func (consoleNotifier) Success(message string) { fmt.Println("✅", message) }
func (consoleNotifier) Error(message string)   { fmt.Println("❌", message) }

// app bundles the wired client components for command handlers.
type app struct {
	cfg      *config.Config
	manager  *session.Manager
	pipeline *content.Pipeline
	modal    *authmodal.Controller
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.InitLogging(cfg.LogLevel, cfg.Env)

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "launchpad-client",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TraceExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.SamplerRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	ctx := context.Background()
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	tokens, err := buildTokenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize token store: %v", err)
	}

	notify := consoleNotifier{}
	client := api.NewClient(cfg.APIBaseURL, tokens, time.Duration(cfg.RequestTimeout)*time.Second)
	manager := session.NewManager(client, tokens, notify)
	modal := authmodal.NewController()
	manager.SetModalCloser(modal)

	a := &app{
		cfg:      cfg,
		manager:  manager,
		pipeline: content.NewPipeline(client, notify),
		modal:    modal,
	}

	var cmdErr error
	switch os.Args[1] {
	case "register":
		cmdErr = a.register(ctx, os.Args[2:])
	case "login":
		cmdErr = a.login(ctx, os.Args[2:])
	case "logout":
		a.logout(ctx)
	case "whoami":
		cmdErr = a.whoami(ctx)
	case "profile":
		cmdErr = a.profile(ctx, os.Args[2:])
	case "create":
		cmdErr = a.create(ctx, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
	}
	if cmdErr != nil {
		os.Exit(1)
	}
}

// buildTokenStore picks Redis when configured, otherwise the token file.
func buildTokenStore(cfg *config.Config) (tokenstore.Store, error) {
	if cfg.TokenRedisURL != "" {
		return tokenstore.NewRedisStore(cfg.TokenRedisURL)
	}
	return tokenstore.NewFileStore(cfg.TokenPath), nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm", "", "password confirmation")
	fullName := fs.String("full-name", "", "display name")
	_ = fs.Parse(args)

	a.modal.Open(authmodal.ModeRegister)
	form := authmodal.RegisterForm{
		Username:        *username,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
		FullName:        *fullName,
	}
	if err := form.Validate(); err != nil {
		fmt.Println("❌", err.Error())
		return err
	}
	return a.manager.Register(ctx, form.Input())
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	a.modal.Open(authmodal.ModeLogin)
	form := authmodal.LoginForm{Email: *email, Password: *password}
	if err := form.Validate(); err != nil {
		fmt.Println("❌", err.Error())
		return err
	}
	return a.manager.Login(ctx, form.Email, form.Password)
}

func (a *app) logout(ctx context.Context) {
	a.manager.Resume(ctx)
	a.manager.Logout(ctx)
}

func (a *app) whoami(ctx context.Context) error {
	if a.manager.Resume(ctx) != session.StateAuthenticated {
		fmt.Println("Not signed in")
		return fmt.Errorf("not signed in")
	}
	return printJSON(a.manager.CurrentUser())
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	fullName := fs.String("full-name", "", "display name")
	bio := fs.String("bio", "", "profile bio")
	location := fs.String("location", "", "profile location")
	website := fs.String("website", "", "profile website")
	avatar := fs.String("avatar", "", "avatar URL")
	_ = fs.Parse(args)

	// Only flags the user actually passed become part of the update.
	var update models.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "full-name":
			update.FullName = fullName
		case "bio":
			update.Bio = bio
		case "location":
			update.Location = location
		case "website":
			update.Website = website
		case "avatar":
			update.Avatar = avatar
		}
	})

	if a.manager.Resume(ctx) != session.StateAuthenticated {
		fmt.Println("Not signed in")
		return fmt.Errorf("not signed in")
	}

	user, err := a.manager.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	return printJSON(user)
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "content title")
	description := fs.String("description", "", "content description")
	contentType := fs.String("type", string(models.ContentTypeTeaser), "content type")
	mediaURL := fs.String("media-url", "", "remote media URL")
	filePath := fs.String("file", "", "local media file to upload")
	thumbnail := fs.String("thumbnail", "", "thumbnail URL")
	hashtags := fs.String("hashtags", "", "hashtags")
	location := fs.String("location", "", "content location")
	scheduled := fs.String("scheduled", "", "scheduled publish date")
	private := fs.Bool("private", false, "mark content private")
	youtube := fs.Bool("youtube", true, "auto-publish to YouTube")
	instagram := fs.Bool("instagram", true, "auto-publish to Instagram")
	twitter := fs.Bool("twitter", false, "auto-publish to Twitter")
	_ = fs.Parse(args)

	if a.manager.Resume(ctx) != session.StateAuthenticated {
		fmt.Println("Not signed in")
		return fmt.Errorf("not signed in")
	}

	draft := content.NewDraft()
	draft.Title = *title
	draft.Description = *description
	draft.ContentType = models.ContentType(*contentType)
	draft.ThumbnailURL = *thumbnail
	draft.Hashtags = *hashtags
	draft.Location = *location
	draft.ScheduledDate = *scheduled
	draft.IsPrivate = *private
	draft.SocialPlatforms = models.SocialPlatforms{
		YouTube:   *youtube,
		Instagram: *instagram,
		Twitter:   *twitter,
	}

	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			fmt.Println("❌ Failed to read file:", err)
			return err
		}
		draft.StageFile(filepath.Base(*filePath), data)
	} else if err := draft.SetMediaURL(*mediaURL); err != nil {
		fmt.Println("❌", err.Error())
		return err
	}

	created, err := a.pipeline.Submit(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Println("Created content", created.ID)
	return printJSON(created)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
