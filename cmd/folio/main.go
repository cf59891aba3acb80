package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	gommonlog "github.com/labstack/gommon/log"

	"github.com/portfolio-site/folio"
	"github.com/portfolio-site/folio/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	case "new-post":
		if err := runNewPost(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "render":
		if err := runRender(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("folio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`folio - a portfolio and blog engine built with Go, Echo, and templ

Usage:
  folio <command> [arguments]

Commands:
  serve             Start the web server (default)
  new-post [flags]  Create a new post file from the command line
  render <id>       Print the parsed blocks of a post as JSON
  version           Print the folio version
  help              Show this help message

Examples:
  folio new-post -title "Hello, world" -tags go,web
  folio render hike-and-heal-nss-adventure`)
}

// siteConfig builds the site configuration from environment variables.
func siteConfig() folio.SiteConfig {
	cookieSecure, _ := strconv.ParseBool(os.Getenv("COOKIE_SECURE"))
	return folio.SiteConfig{
		Name:            folio.EnvOr("SITE_NAME", "Portfolio"),
		URL:             folio.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:     folio.EnvOr("SITE_DESCRIPTION", "Projects, experience and writing."),
		Author:          folio.EnvOr("SITE_AUTHOR", "Sashi Pritam Manandi Anand"),
		Addr:            folio.EnvOr("ADDR", ":3000"),
		DatabasePath:    os.Getenv("DATABASE_PATH"),
		SessionSecret:   folio.MustEnv("SESSION_SECRET"),
		CookieSecure:    cookieSecure,
		ResumeFile:      os.Getenv("RESUME_FILE"),
		CoverLetterFile: os.Getenv("COVER_LETTER_FILE"),
	}
}

func runServe() error {
	app := folio.New(siteConfig(), folio.ViewFuncs{}, folio.WithStaticDir(folio.EnvOr("STATIC_DIR", "public")))
	defer app.Close()
	app.Views = views.New(app.Config)
	app.Echo.HideBanner = true
	app.Echo.Logger.SetLevel(gommonlog.INFO)
	return app.Start()
}
